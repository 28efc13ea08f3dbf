// README: Canned FAQ rules; an ordered list evaluated first-match-wins.
package chat

import "strings"

type rule struct {
	keywords []string
	reply    string
}

// rules are checked in order; the first rule with any keyword present in the
// lowercased message wins. Order matters: "price" must beat "time" for
// questions like "what is the price per hour".
var rules = []rule{
	{
		keywords: []string{"price", "cost", "rate"},
		reply:    "Our daily rates are: Cars ₹200/day and Bikes ₹80/day. Distance limits included: 24hrs (300-400km), 18-23hrs (250-300km), 13-17hrs (180-250km), 8-12hrs (130-180km). Call 8778634656 for details!",
	},
	{
		keywords: []string{"distance", "km", "kilometer", "limit"},
		reply:    "Distance allowances: 24 hours (300-400km), 18-23 hours (250-300km), 13-17 hours (180-250km), 8-12 hours (130-180km). Longer rentals get more kilometers!",
	},
	{
		keywords: []string{"book", "reserve"},
		reply:    "To book a vehicle: 1) Choose car/bike type 2) Select dates and duration 3) Pick your location 4) Complete payment. Each rental includes generous kilometer allowances!",
	},
	{
		keywords: []string{"location", "city", "where"},
		reply:    "We operate across all major Indian cities including Delhi, Mumbai, Bangalore, Chennai, Kolkata, Hyderabad, Pune, and Ahmedabad. More locations available!",
	},
	{
		keywords: []string{"contact", "support", "help"},
		reply:    "Contact us: Customer Care 8778634656 | Emergency Support 9790485440 | Email hello@carzz.in | Website www.carzz.in",
	},
	{
		keywords: []string{"payment", "pay"},
		reply:    "We accept UPI (GPay, PhonePe), Credit/Debit Cards, Digital Wallets (PayTM, Amazon Pay), and Net Banking. All payments are secure!",
	},
	{
		keywords: []string{"hour", "time", "duration"},
		reply:    "Rental durations: 8-12hrs (130-180km), 13-17hrs (180-250km), 18-23hrs (250-300km), 24hrs+ (300-400km). Longer rentals include more distance!",
	},
}

const defaultReply = "Hi! I can help with vehicle rentals, pricing, locations, and bookings. Cars ₹200/day, Bikes ₹80/day with generous kilometer allowances. Call 8778634656 or visit www.carzz.in"

// cannedReply resolves a message against the rule list.
func cannedReply(message string) string {
	msg := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(msg, kw) {
				return r.reply
			}
		}
	}
	return defaultReply
}
