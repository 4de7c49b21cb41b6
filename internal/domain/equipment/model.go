package equipment

// Item is one piece of gym equipment shown on the equipment page.
// Description is markdown; the web layer renders it to HTML.
type Item struct {
	Name        string
	Image       string
	Description string
}

// items is static content; there is no backend endpoint for it.
var items = []Item{
	{
		Name:        "Dumbbell Rack",
		Image:       "/static/images/dumbbells.jpg",
		Description: "Hex dumbbells from **2.5 kg to 50 kg** in 2.5 kg steps.",
	},
	{
		Name:        "Treadmills",
		Image:       "/static/images/treadmills.jpg",
		Description: "Eight motorised treadmills with incline up to **15%**.",
	},
	{
		Name:        "Bench Press",
		Image:       "/static/images/bench-press.jpg",
		Description: "Flat, incline and decline stations with safety spotters.",
	},
	{
		Name:        "Leg Press Machine",
		Image:       "/static/images/leg-press.jpg",
		Description: "45-degree plate-loaded sled rated to **400 kg**.",
	},
	{
		Name:        "Stationary Bikes",
		Image:       "/static/images/bikes.jpg",
		Description: "Spin and recumbent bikes with programmable resistance.",
	},
	{
		Name:        "Cable Crossover",
		Image:       "/static/images/cable-crossover.jpg",
		Description: "Dual adjustable pulleys with a full attachment set.",
	},
}

// Items returns the equipment listing in display order.
func Items() []Item {
	return items
}
