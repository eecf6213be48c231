package domain

import "github.com/shopspring/decimal"

// BookingItem is one parcel within a booking. DeliveryFee is the
// currency-tagged per-item fee; when nil the booking's total fee is
// prorated across its items. TaxiFee is an optional third-party
// pass-through charge deducted from the customer's net payout.
type BookingItem struct {
	ItemID              string           `json:"itemID"`
	DeliveryFee         *decimal.Decimal `json:"deliveryFee,omitempty"`
	DeliveryFeeCurrency string           `json:"deliveryFeeCurrency,omitempty"`
	CODAmount           decimal.Decimal  `json:"codAmount"`
	CODCurrency         string           `json:"codCurrency"`
	TaxiFee             decimal.Decimal  `json:"taxiFee"`
	TaxiFeeCurrency     string           `json:"taxiFeeCurrency,omitempty"`
}

// Booking is the snapshot of an in-flight parcel booking that a
// settlement resolves against.
type Booking struct {
	BookingID        string          `json:"bookingID"`
	CustomerID       string          `json:"customerID"`
	TotalFee         decimal.Decimal `json:"totalFee"`
	FeeCurrency      string          `json:"feeCurrency"`
	PickupDriverID   string          `json:"pickupDriverID,omitempty"`
	DeliveryDriverID string          `json:"deliveryDriverID,omitempty"`
	Items            []BookingItem   `json:"items"`
	AuditFields
}

// Item returns the booking item with the given ID, if present.
func (b Booking) Item(itemID string) (BookingItem, bool) {
	for _, it := range b.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return BookingItem{}, false
}
