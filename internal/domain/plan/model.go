package plan

import (
	"fmt"
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Payment link constants. The UPI VPA is the club's collection account; the
// QR endpoint renders an arbitrary payload as a scannable image.
const (
	payeeVPA   = "fitzone@okhdfcbank"
	payeeName  = "FitZone"
	qrEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	qrSize     = "250x250"
)

// inr prints integers with Indian digit grouping (18000 -> "18,000").
var inr = message.NewPrinter(language.MustParse("en-IN"))

// Feature is one line of a plan's feature matrix.
type Feature struct {
	Text     string
	Included bool
}

// Plan is a membership tier. Prices are whole rupees per year.
type Plan struct {
	ID       string
	Name     string
	Price    int
	Popular  bool
	Features []Feature
}

// plans is static content; there is no backend endpoint for it.
var plans = []Plan{
	{
		ID:    "basic",
		Name:  "Basic",
		Price: 10000,
		Features: []Feature{
			{Text: "Full Gym Access", Included: true},
			{Text: "Locker Rooms & Showers", Included: true},
			{Text: "Group Classes", Included: false},
			{Text: "Personal Trainer", Included: false},
		},
	},
	{
		ID:      "premium",
		Name:    "Premium",
		Price:   18000,
		Popular: true,
		Features: []Feature{
			{Text: "Full Gym Access", Included: true},
			{Text: "Locker Rooms & Showers", Included: true},
			{Text: "Unlimited Group Classes", Included: true},
			{Text: "Personal Trainer", Included: false},
		},
	},
	{
		ID:    "vip",
		Name:  "VIP",
		Price: 25000,
		Features: []Feature{
			{Text: "Full Gym Access", Included: true},
			{Text: "Locker Rooms & Showers", Included: true},
			{Text: "Unlimited Group Classes", Included: true},
			{Text: "2 Personal Trainer Sessions/Month", Included: true},
		},
	},
}

// All returns the membership plans in display order.
func All() []Plan {
	return plans
}

// ByID looks up a plan by its identifier.
func ByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// DisplayPrice renders the price with the rupee sign, e.g. "₹18,000".
func (p Plan) DisplayPrice() string {
	return FormatINR(p.Price)
}

// UPILink builds the upi:// payment URI for this plan. The amount always
// carries two decimal places.
func (p Plan) UPILink() string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d.00&cu=INR&tn=Payment for %s Plan",
		payeeVPA, payeeName, p.Price, p.Name)
}

// QRImageURL builds the third-party QR-render URL with the UPI link as the
// encoded payload. Composition is purely client-side; no backend call.
func (p Plan) QRImageURL() string {
	return qrEndpoint + "?size=" + qrSize + "&data=" + url.QueryEscape(p.UPILink())
}

// FormatINR renders a whole-rupee amount with the ₹ sign and en-IN grouping.
func FormatINR(amount int) string {
	return "₹" + inr.Sprintf("%d", amount)
}
