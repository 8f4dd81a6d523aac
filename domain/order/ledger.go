package order

// LineItem is one basket row. Identity is (order id, product id); no price is stored.
type LineItem struct {
	productID string
	quantity  int
}

func NewLineItem(productID string, quantity int) LineItem {
	return LineItem{productID: productID, quantity: quantity}
}

func (li LineItem) ProductID() string { return li.productID }
func (li LineItem) Quantity() int     { return li.quantity }

// LineRequest is a caller supplied (product, quantity) pair
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Ledger is the set of line items of one order, keyed by product id.
// Insertion order is kept for stable rendering. Every mutation validates
// first and only then changes the set, so a failed call leaves it intact.
type Ledger struct {
	items []LineItem
}

// ValidateLineRequests checks quantities and rejects repeated product ids.
// All offending product ids are reported together.
func ValidateLineRequests(requests []LineRequest) error {
	if err := validateQuantities(requests); err != nil {
		return err
	}
	return rejectDuplicates(requests)
}

func validateQuantities(requests []LineRequest) error {
	for _, r := range requests {
		if r.Quantity < 1 {
			return newInvalidQuantityError(r.ProductID, r.Quantity)
		}
	}
	return nil
}

func rejectDuplicates(requests []LineRequest) error {
	seen := make(map[string]int, len(requests))
	var dups []string
	for _, r := range requests {
		seen[r.ProductID]++
		if seen[r.ProductID] == 2 {
			dups = append(dups, r.ProductID)
		}
	}
	if len(dups) > 0 {
		return newDuplicateLinesError(dups)
	}
	return nil
}

// UniqueProductIDs returns the distinct product ids of requests in first-seen order
func UniqueProductIDs(requests []LineRequest) []string {
	seen := make(map[string]struct{}, len(requests))
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	return ids
}

func (l *Ledger) replaceAll(requests []LineRequest) error {
	if err := ValidateLineRequests(requests); err != nil {
		return err
	}
	items := make([]LineItem, 0, len(requests))
	for _, r := range requests {
		items = append(items, NewLineItem(r.ProductID, r.Quantity))
	}
	l.items = items
	return nil
}

func (l *Ledger) add(productID string, quantity int) error {
	if quantity < 1 {
		return newInvalidQuantityError(productID, quantity)
	}
	if l.Contains(productID) {
		return newLineExistsError(productID)
	}
	l.items = append(l.items, NewLineItem(productID, quantity))
	return nil
}

func (l *Ledger) updateQuantity(orderID, productID string, quantity int) error {
	if quantity < 1 {
		return newInvalidQuantityError(productID, quantity)
	}
	i := l.indexOf(productID)
	if i < 0 {
		return newLineNotFoundError(orderID, productID)
	}
	l.items[i].quantity = quantity
	return nil
}

func (l *Ledger) remove(orderID, productID string) error {
	i := l.indexOf(productID)
	if i < 0 {
		return newLineNotFoundError(orderID, productID)
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return nil
}

func (l *Ledger) indexOf(productID string) int {
	for i, item := range l.items {
		if item.productID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether a line references productID
func (l *Ledger) Contains(productID string) bool {
	return l.indexOf(productID) >= 0
}

// Items returns a copy of the line items
func (l *Ledger) Items() []LineItem {
	items := make([]LineItem, len(l.items))
	copy(items, l.items)
	return items
}

// ProductIDs returns the referenced product ids in basket order
func (l *Ledger) ProductIDs() []string {
	ids := make([]string, len(l.items))
	for i, item := range l.items {
		ids[i] = item.productID
	}
	return ids
}

func (l *Ledger) Len() int { return len(l.items) }
