package models

type CardAction string

const (
	CardMoveTo      CardAction = "move_to"
	CardGoToJail    CardAction = "go_to_jail"
	CardAddMoney    CardAction = "add_money"
	CardDeductMoney CardAction = "deduct_money"
	CardJailFree    CardAction = "jail_free"
)

type Card struct {
	Text   string     `json:"text"`
	Action CardAction `json:"action"`
	Value  int        `json:"value,omitempty"`
}
