package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxManager runs functions inside a MongoDB session transaction.
type TxManager struct {
	client *mongo.Client
}

func NewTxManager(client *mongo.Client) *TxManager {
	return &TxManager{client: client}
}

// Do runs fn in a transaction. Repository calls made with the ctx passed to fn
// join the transaction. A ctx already inside a session is reused as-is.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return classify(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return classify(err)
}
