package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"wedding_server/models"
	"wedding_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// RsvpService builds, persists and reconstructs RSVP submissions
type RsvpService struct {
	Dynamo *DynamoService
}

// ValidateSubmission enforces the pre-build rules on an attend-path
// submission. It returns declineRedirect=true when every guest opted out and
// no plus-one was named, in which case the caller must take the decline path
// instead of reviewing. A *ValidationError names the guest that broke a rule.
func (s *RsvpService) ValidateSubmission(req *models.SubmitRequest) (declineRedirect bool, err error) {
	if !req.Attending {
		return false, nil
	}

	anyAttending := false
	for _, entry := range req.Guests {
		if !entry.Attending {
			continue
		}
		anyAttending = true
		if !entry.Welcome && !entry.Beach && !entry.Wedding {
			return false, &ValidationError{GuestName: entry.Name, Reason: "please select at least one event"}
		}
	}

	hasPlusOne := req.PlusOne != nil && strings.TrimSpace(req.PlusOne.Name) != ""
	if hasPlusOne && !req.PlusOne.Welcome && !req.PlusOne.Beach && !req.PlusOne.Wedding {
		return false, &ValidationError{GuestName: req.PlusOne.Name, Reason: "please select at least one event"}
	}

	if !anyAttending && !hasPlusOne {
		return true, nil
	}
	return false, nil
}

// BuildRecords turns a submission into the set of records to persist. The
// decline path collapses the whole party into a single unlinked record naming
// every member; the attend path produces one record per guest plus an
// optional plus-one record with no guest link.
func (s *RsvpService) BuildRecords(req *models.SubmitRequest) []models.RsvpRecord {
	submissionID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	if !req.Attending {
		names := make([]string, 0, len(req.Members))
		for _, m := range req.Members {
			names = append(names, m.FullName())
		}
		return []models.RsvpRecord{{
			ID:           uuid.NewString(),
			SubmissionID: submissionID,
			Name:         joinNames(names),
			Attending:    false,
			SubmittedBy:  req.Leader,
			Message:      req.Message,
			CreatedAt:    createdAt,
		}}
	}

	var records []models.RsvpRecord
	for _, entry := range req.Guests {
		record := models.RsvpRecord{
			ID:           uuid.NewString(),
			SubmissionID: submissionID,
			GuestID:      entry.GuestID,
			Name:         entry.Name,
			IsChild:      entry.IsChild,
			SubmittedBy:  req.Leader,
			Message:      req.Message,
			CreatedAt:    createdAt,
		}
		if entry.Attending && (entry.Welcome || entry.Beach || entry.Wedding) {
			record.Attending = true
			record.AttendingWelcome = entry.Welcome
			record.AttendingBeach = entry.Beach
			record.AttendingWedding = entry.Wedding
			record.Dietary = strings.TrimSpace(entry.Dietary)
		}
		records = append(records, record)
	}

	if req.PlusOne != nil && strings.TrimSpace(req.PlusOne.Name) != "" {
		records = append(records, models.RsvpRecord{
			ID:               uuid.NewString(),
			SubmissionID:     submissionID,
			Name:             strings.TrimSpace(req.PlusOne.Name),
			Attending:        true,
			AttendingWelcome: req.PlusOne.Welcome,
			AttendingBeach:   req.PlusOne.Beach,
			AttendingWedding: req.PlusOne.Wedding,
			Dietary:          strings.TrimSpace(req.PlusOne.Dietary),
			IsPlusOne:        true,
			SubmittedBy:      req.Leader,
			Message:          req.Message,
			CreatedAt:        createdAt,
		})
	}

	return records
}

// CommitSubmission persists the record batch, then marks every party member
// as responded. The two phases are strictly ordered: if the batch write
// fails, no flag is touched and ErrSubmitFailed is returned. Records already
// written are not rolled back when a flag update fails afterwards.
func (s *RsvpService) CommitSubmission(ctx context.Context, records []models.RsvpRecord, members []models.Guest) error {
	writeRequests := make([]types.WriteRequest, 0, len(records))
	for _, record := range records {
		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			log.Printf("CommitSubmission: failed to marshal record for %q: %v", record.Name, err)
			return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	if err := s.Dynamo.BatchWriteItems(ctx, models.RsvpRecord{}.TableName(), writeRequests); err != nil {
		log.Printf("CommitSubmission: record batch write failed: %v", err)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	// Every member is flagged, even ones no record represents.
	for _, member := range members {
		key := map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: member.ID},
		}
		expressionValues := map[string]types.AttributeValue{
			":responded": &types.AttributeValueMemberBOOL{Value: true},
		}
		_, err := s.Dynamo.UpdateItem(ctx, models.Guest{}.TableName(), "SET responded = :responded", key, expressionValues, nil)
		if err != nil {
			log.Printf("CommitSubmission: failed to mark guest %s as responded: %v", member.ID, err)
			return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
		}
	}

	return nil
}

// ResolveExisting reconstructs the read-only summary of a party's prior
// submission. Callers gate on the responded flag; this method only gathers
// records. Finding none despite the flag means the party declined (decline
// records carry no guest link, so they never match here). A store failure is
// swallowed into a conservative placeholder so the locked view always has
// something to show.
func (s *RsvpService) ResolveExisting(ctx context.Context, members []models.Guest) *models.ExistingRsvp {
	memberIDs := make(map[string]bool, len(members))
	for _, m := range members {
		memberIDs[m.ID] = true
	}

	// Plus-one records carry no guest link, so they survive the filter and
	// get matched to the party by submission id below.
	var records []models.RsvpRecord
	err := s.Dynamo.ScanWithFilter(ctx, models.RsvpRecord{}.TableName(), func(item map[string]types.AttributeValue) bool {
		if utils.ExtractBool(item, "isPlusOne") {
			return true
		}
		return memberIDs[utils.ExtractString(item, "guestId")]
	}, &records)
	if err != nil {
		log.Printf("ResolveExisting: rsvp scan failed, returning placeholder: %v", err)
		return &models.ExistingRsvp{
			Attending:   true,
			Guests:      []models.RsvpGuestSummary{},
			SubmittedBy: "a party member",
			Message:     "",
		}
	}

	return SummarizeRecords(records, members)
}

// SummarizeRecords partitions stored records into a read-only submission
// summary for a party. Records linked to a member's guest id are taken
// directly; plus-one records are matched through the submission id they share
// with a linked record. No linked record at all means the party declined:
// decline records are unlinked, so the flag being set with nothing to show is
// exactly what a decline looks like.
func SummarizeRecords(records []models.RsvpRecord, members []models.Guest) *models.ExistingRsvp {
	memberIDs := make(map[string]bool, len(members))
	for _, m := range members {
		memberIDs[m.ID] = true
	}

	var linked []models.RsvpRecord
	submissionIDs := make(map[string]bool)
	for _, r := range records {
		if r.GuestID != "" && memberIDs[r.GuestID] {
			linked = append(linked, r)
			submissionIDs[r.SubmissionID] = true
		}
	}
	for _, r := range records {
		if r.IsPlusOne && submissionIDs[r.SubmissionID] {
			linked = append(linked, r)
		}
	}

	if len(linked) == 0 {
		return &models.ExistingRsvp{
			Attending: false,
			Guests:    []models.RsvpGuestSummary{},
		}
	}

	existing := &models.ExistingRsvp{
		Guests: []models.RsvpGuestSummary{},
	}
	for _, r := range linked {
		if existing.SubmittedBy == "" && r.SubmittedBy != "" {
			existing.SubmittedBy = r.SubmittedBy
		}
		if existing.Message == "" && r.Message != "" {
			existing.Message = r.Message
		}

		if !r.Attending {
			existing.NotAttending = append(existing.NotAttending, r.Name)
			continue
		}

		summary := models.RsvpGuestSummary{
			Name:    r.Name,
			Events:  r.Events(),
			Dietary: r.Dietary,
			IsChild: r.IsChild,
		}
		if r.IsPlusOne {
			plusOne := summary
			existing.PlusOne = &plusOne
			continue
		}
		existing.Guests = append(existing.Guests, summary)
	}

	existing.Attending = len(existing.Guests) > 0 || existing.PlusOne != nil
	return existing
}

// joinNames formats a name list as "A, B and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
