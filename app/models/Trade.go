package models

import "time"

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
	TradeExpired   TradeStatus = "expired"
)

// TradeBundle is one side of a bilateral exchange.
type TradeBundle struct {
	Money int   `json:"money"`
	Cells []int `json:"cells"`
}

// TradeOffer is a pending or settled exchange between two players. Once the
// status leaves pending the offer is archived and never mutated again.
type TradeOffer struct {
	Id        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Offer     TradeBundle `json:"offer"`
	Request   TradeBundle `json:"request"`
	Status    TradeStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}
