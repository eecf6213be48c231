package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dsadvance/parcel_ledger_app/internal/apperrors"
	"github.com/dsadvance/parcel_ledger_app/internal/core/domain"
	portsrepo "github.com/dsadvance/parcel_ledger_app/internal/core/ports/repositories"
)

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new read-side repository over booking
// snapshots.
func NewBookingRepository(pool *pgxpool.Pool) portsrepo.BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `booking_id, customer_id, total_fee, fee_currency, pickup_driver_id, delivery_driver_id, created_at, created_by, last_updated_at, last_updated_by`

// FindBookingByID retrieves a booking and its items.
func (r *bookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	bookings, err := r.FindBookingsByIDs(ctx, []string{bookingID})
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &bookings[0], nil
}

// FindBookingsByIDs retrieves a set of bookings with their items in two
// queries.
func (r *bookingRepository) FindBookingsByIDs(ctx context.Context, bookingIDs []string) ([]domain.Booking, error) {
	if len(bookingIDs) == 0 {
		return []domain.Booking{}, nil
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = ANY($1) ORDER BY booking_id;`
	rows, err := r.pool.Query(ctx, query, bookingIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Booking{}, nil
		}
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	index := map[string]int{}
	for rows.Next() {
		var b domain.Booking
		var pickupDriverID, deliveryDriverID *string
		if err := rows.Scan(
			&b.BookingID,
			&b.CustomerID,
			&b.TotalFee,
			&b.FeeCurrency,
			&pickupDriverID,
			&deliveryDriverID,
			&b.CreatedAt,
			&b.CreatedBy,
			&b.LastUpdatedAt,
			&b.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		if pickupDriverID != nil {
			b.PickupDriverID = *pickupDriverID
		}
		if deliveryDriverID != nil {
			b.DeliveryDriverID = *deliveryDriverID
		}
		index[b.BookingID] = len(bookings)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}

	itemQuery := `
		SELECT booking_id, item_id, delivery_fee, delivery_fee_currency, cod_amount, cod_currency, taxi_fee, taxi_fee_currency
		FROM booking_items
		WHERE booking_id = ANY($1)
		ORDER BY booking_id, item_id;
	`
	itemRows, err := r.pool.Query(ctx, itemQuery, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var bookingID string
		var item domain.BookingItem
		var deliveryFee *decimal.Decimal
		var deliveryFeeCurrency, taxiFeeCurrency *string
		if err := itemRows.Scan(
			&bookingID,
			&item.ItemID,
			&deliveryFee,
			&deliveryFeeCurrency,
			&item.CODAmount,
			&item.CODCurrency,
			&item.TaxiFee,
			&taxiFeeCurrency,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking item row: %w", err)
		}
		item.DeliveryFee = deliveryFee
		if deliveryFeeCurrency != nil {
			item.DeliveryFeeCurrency = *deliveryFeeCurrency
		}
		if taxiFeeCurrency != nil {
			item.TaxiFeeCurrency = *taxiFeeCurrency
		}
		if i, ok := index[bookingID]; ok {
			bookings[i].Items = append(bookings[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking item rows: %w", err)
	}
	return bookings, nil
}
