package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wedding_server/models"
	"wedding_server/services"
	"wedding_server/test_helpers"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func marshalItems(t *testing.T, values []interface{}) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(values))
	for _, v := range values {
		item, err := attributevalue.MarshalMap(v)
		if err != nil {
			t.Fatalf("failed to marshal item: %v", err)
		}
		items = append(items, item)
	}
	return items
}

func newController(mockClient *test_helpers.MockDynamoDBClient) *RsvpController {
	dynamoService := &services.DynamoService{Client: mockClient}
	return &RsvpController{
		GuestService: &services.GuestService{Dynamo: dynamoService},
		RsvpService:  &services.RsvpService{Dynamo: dynamoService},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestLookupHandlerNotFound(t *testing.T) {
	mockClient := &test_helpers.MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: marshalItems(t, []interface{}{
				models.Guest{ID: "g-john", FirstName: "John", LastName: "Smith"},
			})}, nil
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.LookupHandler, models.LookupRequest{FirstName: "Jane", LastName: "Doe"})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "not_found" {
		t.Errorf("unexpected error body: %v", resp)
	}
	// A miss must not leak anything about the guest list
	if strings.Contains(recorder.Body.String(), "John") {
		t.Error("response leaks guest data")
	}
}

func TestLookupHandlerFoundFresh(t *testing.T) {
	mockClient := &test_helpers.MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: marshalItems(t, []interface{}{
				models.Guest{ID: "g-john", FirstName: "John", LastName: "Smith", PlusOneAllowed: true},
			})}, nil
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.LookupHandler, models.LookupRequest{FirstName: "john", LastName: "SMITH"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var invitation models.Invitation
	if err := json.Unmarshal(recorder.Body.Bytes(), &invitation); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(invitation.Members) != 1 || !invitation.HasPlusOne {
		t.Errorf("unexpected invitation: %+v", invitation)
	}
	if invitation.Existing != nil {
		t.Error("fresh guest must not carry an existing response")
	}
}

func TestLookupHandlerLockedParty(t *testing.T) {
	guests := []interface{}{
		models.Guest{ID: "g-georges", FirstName: "Georges", LastName: "Njeim", Party: "Njeim Family", Responded: true},
		models.Guest{ID: "g-maya", FirstName: "Maya", LastName: "Njeim", Party: "Njeim Family", Responded: true},
	}
	record := models.RsvpRecord{
		ID: "r-1", SubmissionID: "s-1", GuestID: "g-georges", Name: "Georges Njeim",
		Attending: true, AttendingWedding: true, SubmittedBy: "Georges Njeim",
	}
	rsvpTable := models.RsvpRecord{}.TableName()
	mockClient := &test_helpers.MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			if params.TableName != nil && *params.TableName == rsvpTable {
				return &dynamodb.ScanOutput{Items: marshalItems(t, []interface{}{record})}, nil
			}
			return &dynamodb.ScanOutput{Items: marshalItems(t, guests)}, nil
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.LookupHandler, models.LookupRequest{FirstName: "Maya", LastName: "Njeim"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var invitation models.Invitation
	if err := json.Unmarshal(recorder.Body.Bytes(), &invitation); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if invitation.Existing == nil {
		t.Fatal("responded party must carry its existing response")
	}
	if len(invitation.Existing.Guests) != 1 || invitation.Existing.Guests[0].Name != "Georges Njeim" {
		t.Errorf("unexpected summary: %+v", invitation.Existing)
	}
}

func TestLookupHandlerStoreFailure(t *testing.T) {
	mockClient := &test_helpers.MockDynamoDBClient{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			return nil, errors.New("table unreachable")
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.LookupHandler, models.LookupRequest{FirstName: "John", LastName: "Smith"})
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "unreachable") {
		t.Error("internal diagnostics must not reach the client")
	}
}

func TestSubmitHandlerValidationNamesGuest(t *testing.T) {
	controller := newController(&test_helpers.MockDynamoDBClient{})

	recorder := postJSON(t, controller.SubmitHandler, models.SubmitRequest{
		Leader:    "John Smith",
		Members:   []models.Guest{{ID: "g-john", FirstName: "John", LastName: "Smith"}},
		Attending: true,
		Guests: []models.GuestRsvpEntry{
			{GuestID: "g-john", Name: "John Smith", Attending: true},
		},
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "John Smith") {
		t.Errorf("validation message must name the guest: %s", recorder.Body.String())
	}
}

func TestSubmitHandlerSuccess(t *testing.T) {
	batchCalls := 0
	mockClient := &test_helpers.MockDynamoDBClient{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			batchCalls++
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.SubmitHandler, models.SubmitRequest{
		Leader:    "John Smith",
		Members:   []models.Guest{{ID: "g-john", FirstName: "John", LastName: "Smith"}},
		Attending: true,
		Guests: []models.GuestRsvpEntry{
			{GuestID: "g-john", Name: "John Smith", Attending: true, Wedding: true},
		},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if batchCalls != 1 {
		t.Errorf("expected one batch write, got %d", batchCalls)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("unexpected response: %v", resp)
	}
}

func TestSubmitHandlerStoreFailure(t *testing.T) {
	mockClient := &test_helpers.MockDynamoDBClient{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			return nil, errors.New("write throttled")
		},
	}
	controller := newController(mockClient)

	recorder := postJSON(t, controller.SubmitHandler, models.SubmitRequest{
		Leader:    "John Smith",
		Members:   []models.Guest{{ID: "g-john", FirstName: "John", LastName: "Smith"}},
		Attending: true,
		Guests: []models.GuestRsvpEntry{
			{GuestID: "g-john", Name: "John Smith", Attending: true, Wedding: true},
		},
	})
	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "submit_failed") {
		t.Errorf("unexpected error body: %s", recorder.Body.String())
	}
}
