package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/internal/entities"
	apperrors "github.com/toruacampaerickfrancisco-a11y/sistema-matenimiento-sub002/pkg/errors"
)

type NotificationRepositoryInterface interface {
	GetByUser(ctx context.Context, userID uint64, onlyUnread bool, limit uint64) ([]entities.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (uint64, error)
	Create(ctx context.Context, n entities.Notification) (uint64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) GetByUser(ctx context.Context, userID uint64, onlyUnread bool, limit uint64) ([]entities.Notification, error) {
	builder := psql.
		Select("id, user_id, tipo, mensaje, ticket_id, is_read, created_at").
		From("notifications").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC").
		Limit(limit)
	if onlyUnread {
		builder = builder.Where("is_read = false")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listando notificaciones: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Tipo, &n.Mensaje, &n.TicketID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error escaneando notificación: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error contando notificaciones: %w", err)
	}
	return total, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n entities.Notification) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO notifications (user_id, tipo, mensaje, ticket_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		n.UserID, n.Tipo, n.Mensaje, n.TicketID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error insertando notificación: %w", err)
	}
	return id, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("error marcando notificación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return fmt.Errorf("error marcando notificaciones: %w", err)
	}
	return nil
}
