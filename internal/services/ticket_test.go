package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/dto"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/eventbus"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/types"
)

// Dobles en memoria sobre las interfaces de repositorio, para ejercitar la
// orquestación del servicio sin base de datos.

type ticketRepoFake struct {
	tickets      map[uint64]*entities.Ticket
	nextID       uint64
	actualizados int
	partes       map[uint64][]entities.TicketPart
	eliminados   []uint64
}

func newTicketRepoFake() *ticketRepoFake {
	return &ticketRepoFake{
		tickets: make(map[uint64]*entities.Ticket),
		partes:  make(map[uint64][]entities.TicketPart),
	}
}

func (f *ticketRepoFake) GetTickets(ctx context.Context, filter types.Filter) ([]dto.TicketDTO, uint64, error) {
	return nil, 0, nil
}

func (f *ticketRepoFake) FindTicketDTO(ctx context.Context, id uint64) (*dto.TicketDTO, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	d := &dto.TicketDTO{
		ID:       t.ID,
		Folio:    t.Folio,
		Titulo:   t.Titulo,
		Status:   string(t.Status),
		Priority: string(t.Priority),
		Reporter: dto.ShortUserDTO{ID: t.ReporterID},
	}
	for _, p := range f.partes[id] {
		d.Parts = append(d.Parts, dto.TicketPartDTO{Nombre: p.Nombre, Cantidad: p.Cantidad})
	}
	return d, nil
}

func (f *ticketRepoFake) FindTicketByID(ctx context.Context, id uint64) (*entities.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copia := *t
	return &copia, nil
}

func (f *ticketRepoFake) FindTicketForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Ticket, error) {
	return f.FindTicketByID(ctx, id)
}

func (f *ticketRepoFake) CreateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) (uint64, error) {
	f.nextID++
	ticket.ID = f.nextID
	f.tickets[ticket.ID] = &ticket
	return ticket.ID, nil
}

func (f *ticketRepoFake) UpdateTicketInTx(ctx context.Context, tx pgx.Tx, ticket entities.Ticket) error {
	f.actualizados++
	f.tickets[ticket.ID] = &ticket
	return nil
}

func (f *ticketRepoFake) ReplacePartsInTx(ctx context.Context, tx pgx.Tx, ticketID uint64, parts []entities.TicketPart) error {
	f.partes[ticketID] = parts
	return nil
}

func (f *ticketRepoFake) DeleteTicketInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	delete(f.tickets, id)
	f.eliminados = append(f.eliminados, id)
	return nil
}

type deletedRepoFake struct {
	lapidas []entities.DeletedTicket
}

func (f *deletedRepoFake) GetDeletedTickets(ctx context.Context, filter types.Filter) ([]entities.DeletedTicket, uint64, error) {
	return f.lapidas, uint64(len(f.lapidas)), nil
}

func (f *deletedRepoFake) InsertInTx(ctx context.Context, tx pgx.Tx, tombstone entities.DeletedTicket) (uint64, error) {
	f.lapidas = append(f.lapidas, tombstone)
	return uint64(len(f.lapidas)), nil
}

type userRepoFake struct {
	users map[uint64]*entities.User
}

func (f *userRepoFake) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (f *userRepoFake) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *userRepoFake) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *userRepoFake) CreateUserInTx(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	return 0, nil
}

func (f *userRepoFake) UpdateUser(ctx context.Context, id uint64, user entities.User) error {
	return nil
}

func (f *userRepoFake) DeactivateUser(ctx context.Context, id uint64) error { return nil }

type insumoRepoFake struct {
	insumos map[string]*entities.Insumo
}

func (f *insumoRepoFake) GetInsumos(ctx context.Context, filter types.Filter) ([]entities.Insumo, uint64, error) {
	return nil, 0, nil
}

func (f *insumoRepoFake) FindInsumoByID(ctx context.Context, id uint64) (*entities.Insumo, error) {
	for _, i := range f.insumos {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *insumoRepoFake) CreateInsumoInTx(ctx context.Context, tx pgx.Tx, insumo entities.Insumo) (uint64, error) {
	return 0, nil
}

func (f *insumoRepoFake) UpdateInsumo(ctx context.Context, id uint64, insumo entities.Insumo) error {
	return nil
}

func (f *insumoRepoFake) FindByNombreForUpdateInTx(ctx context.Context, tx pgx.Tx, nombre string) (*entities.Insumo, error) {
	i, ok := f.insumos[strings.ToLower(nombre)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copia := *i
	return &copia, nil
}

func (f *insumoRepoFake) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Insumo, error) {
	return f.FindInsumoByID(ctx, id)
}

func (f *insumoRepoFake) ApplyMovementInTx(ctx context.Context, tx pgx.Tx, insumoID uint64, nuevaCantidad int64, salida *entities.InventoryMovement) error {
	for _, i := range f.insumos {
		if i.ID == insumoID {
			i.Cantidad = nuevaCantidad
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type movementRepoFake struct {
	movimientos []entities.InventoryMovement
	conteos     int
}

func (f *movementRepoFake) CreateMovementInTx(ctx context.Context, tx pgx.Tx, movement entities.InventoryMovement) (uint64, error) {
	f.movimientos = append(f.movimientos, movement)
	return uint64(len(f.movimientos)), nil
}

func (f *movementRepoFake) GetMovements(ctx context.Context, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	return nil, 0, nil
}

func (f *movementRepoFake) GetMovementsByInsumo(ctx context.Context, insumoID uint64, filter types.Filter) ([]dto.MovementDTO, uint64, error) {
	return nil, 0, nil
}

func (f *movementRepoFake) CountByTicket(ctx context.Context, ticketID uint64) (uint64, error) {
	f.conteos++
	var n uint64
	for _, m := range f.movimientos {
		if m.TicketID != nil && *m.TicketID == ticketID {
			n++
		}
	}
	return n, nil
}

type txManagerFake struct{}

func (txManagerFake) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type ticketServiceFixture struct {
	svc         TicketServiceInterface
	tickets     *ticketRepoFake
	lapidas     *deletedRepoFake
	usuarios    *userRepoFake
	insumos     *insumoRepoFake
	movimientos *movementRepoFake
}

func newTicketServiceFixture() *ticketServiceFixture {
	f := &ticketServiceFixture{
		tickets:     newTicketRepoFake(),
		lapidas:     &deletedRepoFake{},
		usuarios:    &userRepoFake{users: make(map[uint64]*entities.User)},
		insumos:     &insumoRepoFake{insumos: make(map[string]*entities.Insumo)},
		movimientos: &movementRepoFake{},
	}
	f.svc = NewTicketService(
		f.tickets, f.lapidas, f.usuarios, f.insumos, f.movimientos,
		txManagerFake{}, eventbus.New(zap.NewNop()), zap.NewNop(),
	)
	return f
}

func strPtr(s string) *string { return &s }

func TestTicketService_CreateComoUsuarioIgnoraClasificacion(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	tecnicoID := uint64(55)
	creado, err := f.svc.CreateTicket(ctx, 7, entities.RoleUsuario, dto.CreateTicketDTO{
		Titulo:       "La impresora no enciende",
		Descripcion:  "No responde al botón de encendido",
		ServiceType:  "correctivo",
		Priority:     strPtr("critica"),
		AssignedToID: &tecnicoID,
	})
	require.NoError(t, err)

	guardado := f.tickets.tickets[creado.ID]
	require.NotNil(t, guardado)
	assert.Equal(t, entities.StatusNuevo, guardado.Status)
	assert.Equal(t, entities.PrioritySinClasificar, guardado.Priority)
	assert.Nil(t, guardado.AssignedToID)
	assert.Equal(t, uint64(7), guardado.ReporterID)
	assert.Nil(t, guardado.AssignedAt)
}

func TestTicketService_CreateComoTecnicoClasifica(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.usuarios.users[55] = &entities.User{ID: 55, Role: entities.RoleTecnico, IsActive: true}

	tecnicoID := uint64(55)
	creado, err := f.svc.CreateTicket(ctx, 3, entities.RoleAdmin, dto.CreateTicketDTO{
		Titulo:       "Instalar proyector en sala",
		Descripcion:  "Sala de juntas del segundo piso",
		ServiceType:  "instalacion",
		Priority:     strPtr("alta"),
		AssignedToID: &tecnicoID,
	})
	require.NoError(t, err)

	guardado := f.tickets.tickets[creado.ID]
	assert.Equal(t, entities.PriorityAlta, guardado.Priority)
	require.NotNil(t, guardado.AssignedToID)
	assert.Equal(t, tecnicoID, *guardado.AssignedToID)
	assert.NotNil(t, guardado.AssignedAt)
}

func TestTicketService_UpdateRechazaTicketCerrado(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Ticket ya resuelto", Status: entities.StatusCerrado,
		Priority: entities.PriorityMedia, ServiceType: entities.ServiceCorrectivo, ReporterID: 7,
	}

	_, err := f.svc.UpdateTicket(ctx, 3, entities.RoleAdmin, 1, dto.UpdateTicketDTO{
		Titulo: strPtr("Intento de edición tardía"),
	})
	assert.ErrorIs(t, err, apperrors.ErrTicketCerrado)
	assert.Zero(t, f.tickets.actualizados)
	assert.Equal(t, "Ticket ya resuelto", f.tickets.tickets[1].Titulo)
}

func TestTicketService_DeleteSinJustificacionNoEscribe(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Ticket duplicado", Status: entities.StatusNuevo,
		Priority: entities.PrioritySinClasificar, ServiceType: entities.ServiceCorrectivo, ReporterID: 7,
	}

	err := f.svc.DeleteTicket(ctx, 3, 1, dto.DeleteTicketDTO{Justificacion: ""})
	assert.ErrorIs(t, err, apperrors.ErrJustificacionRequerida)
	assert.Empty(t, f.lapidas.lapidas)
	assert.Empty(t, f.tickets.eliminados)
	assert.Zero(t, f.movimientos.conteos)
	assert.Contains(t, f.tickets.tickets, uint64(1))
}

func TestTicketService_DeleteConJustificacionDejaLapida(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Ticket duplicado", Status: entities.StatusNuevo,
		Priority: entities.PrioritySinClasificar, ServiceType: entities.ServiceCorrectivo, ReporterID: 7,
	}

	err := f.svc.DeleteTicket(ctx, 3, 1, dto.DeleteTicketDTO{Justificacion: "Reporte duplicado"})
	require.NoError(t, err)
	require.Len(t, f.lapidas.lapidas, 1)
	assert.Equal(t, "Reporte duplicado", f.lapidas.lapidas[0].Justificacion)
	assert.Equal(t, uint64(3), f.lapidas.lapidas[0].DeletedBy)
	assert.False(t, f.lapidas.lapidas[0].DeletedAt.IsZero())
	assert.NotContains(t, f.tickets.tickets, uint64(1))
}

func TestTicketService_ConsumoDeRefaccionesDescuentaInventario(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.insumos.insumos["cable hdmi"] = &entities.Insumo{
		ID: 9, Nombre: "Cable HDMI", Cantidad: 10, StockMinimo: 2, Unidad: "pieza",
	}
	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Pantalla sin señal", Status: entities.StatusEnProceso,
		Priority: entities.PriorityMedia, ServiceType: entities.ServiceCorrectivo, ReporterID: 7,
	}

	parts := []dto.TicketPartDTO{{Nombre: "Cable HDMI", Cantidad: 2}}
	_, err := f.svc.UpdateTicket(ctx, 3, entities.RoleTecnico, 1, dto.UpdateTicketDTO{Parts: &parts})
	require.NoError(t, err)

	assert.Equal(t, int64(8), f.insumos.insumos["cable hdmi"].Cantidad)

	require.Len(t, f.movimientos.movimientos, 1)
	mov := f.movimientos.movimientos[0]
	assert.Equal(t, entities.MovementTicket, mov.Tipo)
	assert.Equal(t, int64(-2), mov.Cantidad)
	require.NotNil(t, mov.TicketID)
	assert.Equal(t, uint64(1), *mov.TicketID)

	assert.Equal(t, []entities.TicketPart{{Nombre: "Cable HDMI", Cantidad: 2}}, f.tickets.partes[1])
}

func TestTicketService_DescuentaInsumosEnOrdenEstable(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.insumos.insumos["tóner hp 85a"] = &entities.Insumo{
		ID: 1, Nombre: "Tóner HP 85A", Cantidad: 10, StockMinimo: 1, Unidad: "pieza",
	}
	f.insumos.insumos["cable hdmi"] = &entities.Insumo{
		ID: 2, Nombre: "Cable HDMI", Cantidad: 10, StockMinimo: 1, Unidad: "pieza",
	}
	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Impresora compartida falla", Status: entities.StatusEnProceso,
		Priority: entities.PriorityAlta, ServiceType: entities.ServiceCorrectivo, ReporterID: 7,
	}

	parts := []dto.TicketPartDTO{
		{Nombre: "Tóner HP 85A", Cantidad: 1},
		{Nombre: "Cable HDMI", Cantidad: 1},
	}
	_, err := f.svc.UpdateTicket(ctx, 3, entities.RoleTecnico, 1, dto.UpdateTicketDTO{Parts: &parts})
	require.NoError(t, err)

	// El orden de bloqueo es alfabético por nombre, sin importar el orden de
	// las refacciones en el payload.
	require.Len(t, f.movimientos.movimientos, 2)
	assert.Equal(t, uint64(2), f.movimientos.movimientos[0].InsumoID)
	assert.Equal(t, uint64(1), f.movimientos.movimientos[1].InsumoID)
}

func TestTicketService_EdicionTecnicaVedadaAlUsuario(t *testing.T) {
	f := newTicketServiceFixture()
	ctx := context.Background()

	f.tickets.tickets[1] = &entities.Ticket{
		ID: 1, Folio: "f-1", Titulo: "Equipo lento", Status: entities.StatusNuevo,
		Priority: entities.PrioritySinClasificar, ServiceType: entities.ServicePreventivo, ReporterID: 7,
	}

	_, err := f.svc.UpdateTicket(ctx, 7, entities.RoleUsuario, 1, dto.UpdateTicketDTO{
		Status: strPtr("cerrado"),
	})
	assert.ErrorIs(t, err, apperrors.ErrEdicionReservadaATecnico)
	assert.Zero(t, f.tickets.actualizados)
}
