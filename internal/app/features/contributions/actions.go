// internal/app/features/contributions/actions.go
package contributions

import (
	"context"

	contributionstore "github.com/dalemusser/gracehub/internal/app/store/contributions"
	userstore "github.com/dalemusser/gracehub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// unknownMember labels gifts whose contributor is missing or deleted.
const unknownMember = "Unknown member"

// ContributionView is a contribution joined with its contributor.
type ContributionView struct {
	ID          string `json:"id"`
	MpesaRef    string `json:"mpesaRef"`
	UserID      string `json:"userId,omitempty"`
	MemberName  string `json:"memberName"`
	MemberEmail string `json:"memberEmail,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Date        string `json:"date"`
}

// ListContributions returns contributions newest first, resolving every
// contributor with one batched lookup. Failures yield an empty list.
func (h *Handler) ListContributions(ctx context.Context) []ContributionView {
	list, err := contributionstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list contributions failed", zap.Error(err))
		return []ContributionView{}
	}

	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, c := range list {
		if c.UserID == nil {
			continue
		}
		if _, dup := seen[*c.UserID]; !dup {
			seen[*c.UserID] = struct{}{}
			ids = append(ids, *c.UserID)
		}
	}

	people, err := userstore.New(h.DB).ByIDs(ctx, ids)
	if err != nil {
		// Still show the ledger; names fall back to unknownMember.
		h.Log.Warn("contributor lookup failed", zap.Int("users", len(ids)), zap.Error(err))
	}

	out := make([]ContributionView, 0, len(list))
	for _, c := range list {
		v := ContributionView{
			ID:         c.ID.Hex(),
			MpesaRef:   c.MpesaRef,
			MemberName: unknownMember,
			Amount:     c.Amount,
			Date:       c.Date,
		}
		if c.UserID != nil {
			v.UserID = c.UserID.Hex()
			if u, ok := people[*c.UserID]; ok {
				v.MemberName = u.Name
				v.MemberEmail = u.Email
			}
		}
		out = append(out, v)
	}
	return out
}
