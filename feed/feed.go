package feed

import "context"

const (
	EventOrderPlaced    = "order_placed"
	EventContactMessage = "contact_message"
	EventCatalogUpdated = "catalog_updated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher delivers a message after the change it describes is committed.
// Delivery is best effort: failures are logged by the publisher.
type Publisher interface {
	Publish(ctx context.Context, msg Message)
}

// Fanout publishes to every non-nil publisher in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, msg Message) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, msg)
		}
	}
}

type Nop struct{}

func (Nop) Publish(context.Context, Message) {}
