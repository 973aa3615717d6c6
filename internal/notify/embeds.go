package notify

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	colorPurchase = 0x57f287
	colorAdmin    = 0xf1c40f
)

// PurchaseMessage announces a completed store purchase.
func PurchaseMessage(user, item string, price, balance int64, currency string, at time.Time) Message {
	return Message{Embeds: []Embed{{
		Title:  "✅ New purchase",
		Color:  colorPurchase,
		Author: &Author{Name: user},
		Fields: []Field{
			{Name: "Item", Value: item, Inline: true},
			{Name: "Price", Value: fmt.Sprintf("%s %s", humanize.Comma(price), currency), Inline: true},
			{Name: "Remaining balance", Value: fmt.Sprintf("%s %s", humanize.Comma(balance), currency), Inline: true},
		},
		Timestamp: at.UTC().Format(time.RFC3339),
		Footer:    &Footer{Text: "Arcade Store"},
	}}}
}

// GrantMessage announces coins added by an administrator. The target is
// rendered as a Discord user mention.
func GrantMessage(admin, targetUserID string, amount, balance int64, at time.Time) Message {
	return Message{Embeds: []Embed{{
		Title: "🛠️ Admin action: coins added",
		Color: colorAdmin,
		Fields: []Field{
			{Name: "Admin", Value: admin, Inline: true},
			{Name: "Affected user", Value: fmt.Sprintf("<@%s>", targetUserID)},
			{Name: "Coins added", Value: "+" + humanize.Comma(amount), Inline: true},
			{Name: "New balance", Value: humanize.Comma(balance), Inline: true},
		},
		Timestamp: at.UTC().Format(time.RFC3339),
		Footer:    &Footer{Text: "Admin panel"},
	}}}
}
