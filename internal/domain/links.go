package domain

// Every bidirectional relationship has exactly one mutation entrypoint here.
// Each helper updates the owning foreign key and the inverse collection in the
// same call; no other code touches either side directly.

// AssignMember links an order to its member and appends the order to the
// member's non-owning back-reference.
func AssignMember(order *Order, member *Member) {
	order.MemberID = member.ID
	order.Member = member
	member.Orders = append(member.Orders, order)
}

// AttachDelivery links an order to the delivery it owns.
func AttachDelivery(order *Order, delivery *Delivery) {
	order.DeliveryID = delivery.ID
	order.Delivery = delivery
}

// AttachLine appends a line to its owning order and points the line back at it.
func AttachLine(order *Order, line *OrderLine) {
	line.OrderID = order.ID
	order.Lines = append(order.Lines, line)
}

// AddChildCategory hangs a child under a parent category.
func AddChildCategory(parent, child *Category) {
	id := parent.ID
	child.ParentID = &id
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// LinkCategoryItem cross-links a category and an item (many-to-many).
func LinkCategoryItem(category *Category, item *Item) {
	category.Items = append(category.Items, item)
	item.Categories = append(item.Categories, category)
}
