package authz

import (
	"time"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
)

// Decision es el veredicto de una regla sobre una petición de acceso.
type Decision int

const (
	// DecisionSkip: la regla no aplica; se consulta la siguiente de la cadena.
	DecisionSkip Decision = iota
	DecisionAllow
	DecisionDeny
)

// Request reúne todo lo necesario para evaluar un acceso. Grants debe venir
// recién leído de la base: la vigencia depende de `Now` y no se cachea.
type Request struct {
	Actor  *entities.User
	Grants []entities.UserPermission
	Module entities.Module
	Action entities.Action
	Now    time.Time
}

// Rule es una variante etiquetada de la cadena de autorización. El orden de
// evaluación es fijo y auditable: AdminRule, RoleRule, GrantRule.
type Rule interface {
	Name() string
	Evaluate(req Request) Decision
}

// AdminRule: el rol admin tiene acceso incondicional a todo par (module, action).
type AdminRule struct{}

func (AdminRule) Name() string { return "admin" }

func (AdminRule) Evaluate(req Request) Decision {
	if req.Actor != nil && req.Actor.Role == entities.RoleAdmin {
		return DecisionAllow
	}
	return DecisionSkip
}

// RoleRule aplica la tabla fija de política por rol. Para los módulos que la
// tabla enumera, su veredicto es definitivo y los permisos granulares NO se
// consultan; los módulos no enumerados caen a GrantRule.
type RoleRule struct {
	policy map[entities.Role]rolePolicy
}

func NewRoleRule() RoleRule {
	return RoleRule{policy: buildRolePolicy()}
}

func (RoleRule) Name() string { return "role" }

func (r RoleRule) Evaluate(req Request) Decision {
	if req.Actor == nil {
		return DecisionDeny
	}
	policy, ok := r.policy[req.Actor.Role]
	if !ok {
		// Rol sin rama propia (p. ej. uno futuro): decide la tabla granular.
		return DecisionSkip
	}
	if actions, enumerated := policy.granted[req.Module]; enumerated {
		if actions[req.Action] {
			return DecisionAllow
		}
		return DecisionDeny
	}
	if policy.denied[req.Module] {
		return DecisionDeny
	}
	return DecisionSkip
}

// GrantRule consulta las concesiones UserPermission activas y no expiradas.
type GrantRule struct{}

func (GrantRule) Name() string { return "grant" }

func (GrantRule) Evaluate(req Request) Decision {
	for _, grant := range req.Grants {
		if grant.Module != req.Module || grant.Action != req.Action {
			continue
		}
		if grant.Vigente(req.Now) {
			return DecisionAllow
		}
	}
	return DecisionSkip
}
