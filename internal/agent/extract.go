package agent

import (
	"regexp"
	"strings"
)

// OrderItem is one raw product line parsed from an assistant data block.
// Fields stay as strings here; the persistence layer decides how to type them.
type OrderItem struct {
	Category string
	Product  string
	Spec1    string
	Spec2    string
	Spec3    string
	Quantity string
	Unit     string
}

// Order is the machine-readable order extracted from a confirmed reply.
type Order struct {
	Items    []OrderItem
	Location string
}

var (
	alefVariants  = regexp.MustCompile("[إأآا]")
	yaVariant     = regexp.MustCompile("ى")
	taMarbuta     = regexp.MustCompile("ة")
	spaceCollapse = regexp.MustCompile(`\s+`)
	addressLine   = regexp.MustCompile(`العنوان:\s*(.+)`)
)

// NormalizeArabic folds the letter variants that customers and the model mix
// freely, so location names compare reliably.
func NormalizeArabic(text string) string {
	text = alefVariants.ReplaceAllString(text, "ا")
	text = yaVariant.ReplaceAllString(text, "ي")
	text = taMarbuta.ReplaceAllString(text, "ه")
	return strings.TrimSpace(spaceCollapse.ReplaceAllString(text, " "))
}

// AsksForLocation reports whether a reply carries the location request marker.
func AsksForLocation(reply string) bool {
	return strings.Contains(reply, AskLocationMarker)
}

// HasOrderBlock reports whether a reply carries a machine-readable data block.
func HasOrderBlock(reply string) bool {
	return strings.Contains(reply, dataStartMarker)
}

// StripOrderBlock removes the data block, leaving the human-readable summary.
func StripOrderBlock(reply string) string {
	if i := strings.Index(reply, dataStartMarker); i >= 0 {
		return strings.TrimSpace(reply[:i])
	}
	return reply
}

// ExtractOrder parses the data block out of an assistant reply. It returns
// nil when the reply holds no complete order, when the address is missing or
// too short, or when allowedLocations is non-empty and the address matches
// none of them after normalization. On a match the canonical catalog name is
// used, not the model's spelling.
func ExtractOrder(reply string, allowedLocations []string) *Order {
	if !HasOrderBlock(reply) {
		return nil
	}

	block := reply[strings.Index(reply, dataStartMarker)+len(dataStartMarker):]
	if i := strings.Index(block, dataEndMarker); i >= 0 {
		block = block[:i]
	}
	block = strings.TrimSpace(block)

	parts := strings.SplitN(block, "CUSTOMER:", 2)
	if len(parts) < 2 {
		return nil
	}
	itemsPart := strings.TrimSpace(strings.Replace(parts[0], "ITEMS:", "", 1))
	customerPart := strings.TrimSpace(parts[1])

	var items []OrderItem
	for _, line := range strings.Split(itemsPart, "\n") {
		if !strings.Contains(line, "|") || strings.Contains(line, "فئة|") {
			continue
		}
		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		// Category and product lead, quantity and unit trail; anything in
		// between is specs. The model drops spec columns often enough that
		// positional mapping from both ends is the only robust option.
		if len(fields) < 5 {
			continue
		}
		specs := fields[2 : len(fields)-2]
		item := OrderItem{
			Category: fields[0],
			Product:  fields[1],
			Quantity: fields[len(fields)-2],
			Unit:     fields[len(fields)-1],
		}
		if len(specs) > 0 {
			item.Spec1 = specs[0]
		}
		if len(specs) > 1 {
			item.Spec2 = specs[1]
		}
		if len(specs) > 2 {
			item.Spec3 = specs[2]
		}
		items = append(items, item)
	}

	m := addressLine.FindStringSubmatch(customerPart)
	if m == nil || len(items) == 0 {
		return nil
	}
	location := strings.TrimSpace(m[1])
	if len([]rune(location)) <= 2 {
		return nil
	}

	if len(allowedLocations) > 0 {
		normalized := strings.ToLower(NormalizeArabic(location))
		found := false
		for _, allowed := range allowedLocations {
			if normalized == strings.ToLower(NormalizeArabic(allowed)) {
				location = allowed
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	return &Order{Items: items, Location: location}
}
