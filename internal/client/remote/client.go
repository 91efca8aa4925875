// Package remote talks to the tribute store of record. Each operation is a
// single request/response exchange; retries, if any, belong to the caller.
// The store's loose wire shapes are normalized here and never leak out.
package remote

import (
	"context"
	"time"

	"github.com/dmuchiri/tributewall/internal/models"
)

// AppendRequest carries a validated draft to the store.
type AppendRequest struct {
	AuthorName   string
	Message      string
	Relationship string
	Location     string
	OwnerToken   string
	SubmittedAt  time.Time
}

// Client is the three-operation surface of the remote tribute store.
//
// Error contract:
//   - List: common.ErrTransport on network failure or a non-success status,
//     common.ErrProtocol when the response cannot be parsed.
//   - Append: *common.RejectedError when the store refused the submission
//     (its message preserved verbatim), common.ErrTransport or
//     common.ErrProtocol as above.
//   - Remove: common.ErrNotFound when the record is already gone (callers
//     treat this as success), common.ErrTransport / common.ErrProtocol as above.
type Client interface {
	List(ctx context.Context) ([]models.Tribute, error)
	Append(ctx context.Context, req AppendRequest) (id string, err error)
	Remove(ctx context.Context, id, ownerToken string) error
}
