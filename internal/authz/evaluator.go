package authz

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// Evaluator responde hasPermission(user, module, action) recorriendo la cadena
// de reglas en orden fijo. Es una función pura del usuario y del estado de
// concesiones que recibe: no hace I/O, no lanza errores y la ausencia de datos
// significa denegar.
type Evaluator struct {
	rules []Rule
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		rules: []Rule{
			AdminRule{},
			NewRoleRule(),
			GrantRule{},
		},
	}
}

// HasPermission evalúa la cadena: el primer Allow o Deny decide; si todas las
// reglas se abstienen, se niega por omisión.
func (e *Evaluator) HasPermission(actor *entities.User, grants []entities.UserPermission, module entities.Module, action entities.Action) bool {
	if actor == nil || !actor.IsActive {
		return false
	}

	req := Request{
		Actor:  actor,
		Grants: grants,
		Module: module,
		Action: action,
		Now:    time.Now(),
	}

	for _, rule := range e.rules {
		switch rule.Evaluate(req) {
		case DecisionAllow:
			return true
		case DecisionDeny:
			return false
		}
	}
	return false
}

// HasModuleAccess equivale a HasPermission con la acción view.
func (e *Evaluator) HasModuleAccess(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionView)
}

func (e *Evaluator) CanView(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionView)
}

func (e *Evaluator) CanCreate(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionCreate)
}

func (e *Evaluator) CanEdit(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionEdit)
}

func (e *Evaluator) CanDelete(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionDelete)
}

func (e *Evaluator) CanExport(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionExport)
}

func (e *Evaluator) CanAssign(actor *entities.User, grants []entities.UserPermission, module entities.Module) bool {
	return e.HasPermission(actor, grants, module, entities.ActionAssign)
}
