package services

import (
	"context"
	"fmt"
	"log"

	"wedding_server/models"
	"wedding_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GuestService resolves invitations from the guest directory
type GuestService struct {
	Dynamo *DynamoService
}

// FindInvitation looks up a guest by first and last name (case-insensitive,
// exact) and resolves the full party. If the matched guest carries a party
// name, the member set is every guest sharing that exact party name, the
// matched guest included; a solo guest is a party of one. A plus-one is only
// offered to solo guests with the allowance flag set; named-party members
// never get one regardless of the flag.
func (s *GuestService) FindInvitation(ctx context.Context, firstName, lastName string) (*models.Invitation, error) {
	var matches []models.Guest
	err := s.Dynamo.ScanWithFilter(ctx, models.Guest{}.TableName(), func(item map[string]types.AttributeValue) bool {
		return equalFold(utils.ExtractString(item, "firstName"), firstName) &&
			equalFold(utils.ExtractString(item, "lastName"), lastName)
	}, &matches)
	if err != nil {
		log.Printf("FindInvitation: guest scan failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if len(matches) == 0 {
		return nil, ErrGuestNotFound
	}
	matched := matches[0]

	members := []models.Guest{matched}
	if matched.Party != "" {
		members = nil
		err = s.Dynamo.ScanWithFilter(ctx, models.Guest{}.TableName(), func(item map[string]types.AttributeValue) bool {
			return utils.ExtractString(item, "party") == matched.Party
		}, &members)
		if err != nil {
			log.Printf("FindInvitation: party scan failed for %q: %v", matched.Party, err)
			return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
		}
	}

	return &models.Invitation{
		Leader:     matched.FullName(),
		Members:    members,
		HasPlusOne: matched.PlusOneAllowed && matched.Party == "",
	}, nil
}
