package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestAssignMember(t *testing.T) {
	member := &Member{ID: uuid.New()}
	order := &Order{ID: uuid.New()}

	AssignMember(order, member)

	if order.MemberID != member.ID {
		t.Fatalf("order.MemberID=%s, want %s", order.MemberID, member.ID)
	}
	if order.Member != member {
		t.Fatal("order.Member not set")
	}
	if len(member.Orders) != 1 || member.Orders[0] != order {
		t.Fatal("member.Orders back-reference not updated")
	}
}

func TestAttachDelivery(t *testing.T) {
	order := &Order{ID: uuid.New()}
	delivery := &Delivery{ID: uuid.New()}

	AttachDelivery(order, delivery)

	if order.DeliveryID != delivery.ID {
		t.Fatalf("order.DeliveryID=%s, want %s", order.DeliveryID, delivery.ID)
	}
	if order.Delivery != delivery {
		t.Fatal("order.Delivery not set")
	}
}

func TestAttachLine(t *testing.T) {
	order := &Order{ID: uuid.New()}
	first := &OrderLine{ID: uuid.New()}
	second := &OrderLine{ID: uuid.New()}

	AttachLine(order, first)
	AttachLine(order, second)

	if first.OrderID != order.ID || second.OrderID != order.ID {
		t.Fatal("line.OrderID not pointed at owning order")
	}
	if len(order.Lines) != 2 {
		t.Fatalf("len(order.Lines)=%d, want 2", len(order.Lines))
	}
}

func TestAddChildCategory(t *testing.T) {
	parent := &Category{ID: uuid.New(), Name: "books"}
	child := &Category{ID: uuid.New(), Name: "novels"}

	AddChildCategory(parent, child)

	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatal("child.ParentID not set")
	}
	if child.Parent != parent {
		t.Fatal("child.Parent not set")
	}
	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Fatal("parent.Children not updated")
	}
}

func TestLinkCategoryItem(t *testing.T) {
	category := &Category{ID: uuid.New()}
	item := &Item{ID: uuid.New()}

	LinkCategoryItem(category, item)

	if len(category.Items) != 1 || category.Items[0] != item {
		t.Fatal("category.Items not updated")
	}
	if len(item.Categories) != 1 || item.Categories[0] != category {
		t.Fatal("item.Categories not updated")
	}
}
