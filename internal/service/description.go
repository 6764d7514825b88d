package service

import (
	"context"
	"fmt"

	"github.com/jlane/prodesc/internal/domain"
	"github.com/jlane/prodesc/internal/logger"
)

// Column names in the descriptions table. "Product Name" is the table's
// primary field and holds the caller-supplied record ID; "Product" is the
// link field and only ever carries resolved record IDs, never names.
const (
	fieldProductName       = "Product Name"
	fieldKeyFeatures       = "Key Features"
	fieldTargetAudience    = "Target Audience"
	fieldDescriptionLength = "Description Length"
	fieldGeneratedText     = "Generated Text"
	fieldProductLink       = "Product"
)

// ProductLink names a product to link the saved description to.
type ProductLink struct {
	Name string `json:"name"`
}

// SaveDescriptionRequest is the inbound save payload. LinkedProduct is
// optional; an absent or empty list means the saved row gets an empty link
// set. Everything else must be present and non-empty.
type SaveDescriptionRequest struct {
	RecordID          string        `json:"recordId" binding:"required"`
	LinkedProduct     []ProductLink `json:"linkedProduct"`
	KeyFeatures       string        `json:"keyFeatures" binding:"required"`
	TargetAudience    string        `json:"targetAudience" binding:"required"`
	DescriptionLength string        `json:"descriptionLength" binding:"required"`
	GeneratedText     string        `json:"generatedText" binding:"required"`
}

// ValidationError is a client-side input error, rejected before any upstream
// call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ResolutionError wraps a failure inside product-name resolution. The
// enclosing save is aborted: a row is never written with a missing link when
// a link was requested.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve linked product: %v", e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Validate checks the required field set. Gin's binding enforces the same
// rules at the HTTP boundary; this keeps the service safe for other callers.
func (r *SaveDescriptionRequest) Validate() error {
	missing := ""
	switch {
	case r.RecordID == "":
		missing = "recordId"
	case r.KeyFeatures == "":
		missing = "keyFeatures"
	case r.TargetAudience == "":
		missing = "targetAudience"
	case r.DescriptionLength == "":
		missing = "descriptionLength"
	case r.GeneratedText == "":
		missing = "generatedText"
	}
	if missing != "" {
		return &ValidationError{Message: fmt.Sprintf("missing required field: %s", missing)}
	}
	return nil
}

// linkedName returns the requested product name, or "" when no link was
// requested. Only the first element of the link list is considered; an empty
// list or an element without a name means "no link".
func (r *SaveDescriptionRequest) linkedName() string {
	if len(r.LinkedProduct) == 0 {
		return ""
	}
	return r.LinkedProduct[0].Name
}

// DescriptionService validates save requests, resolves the optional product
// link and appends one row to the descriptions table.
type DescriptionService struct {
	store    productStore
	resolver *ProductResolver
	table    string
}

// NewDescriptionService creates the save orchestrator. table is the
// descriptions table name; resolver owns the products table.
func NewDescriptionService(store productStore, resolver *ProductResolver, table string) *DescriptionService {
	return &DescriptionService{
		store:    store,
		resolver: resolver,
		table:    table,
	}
}

// Save validates req, resolves the linked product when one is named, and
// writes the description row. Either the whole save succeeds and the created
// row is returned, or no row is written (modulo the resolver's documented
// create race).
func (s *DescriptionService) Save(ctx context.Context, req *SaveDescriptionRequest) (*domain.DescriptionRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !domain.KnownLength(req.DescriptionLength) {
		logger.CtxWarn(ctx, "Unrecognized description length %q; storing as given", req.DescriptionLength)
	}

	// Link field invariant: an empty reference set when no link is requested,
	// exactly one resolved ID otherwise. Raw names never reach this field.
	linkRefs := []string{}
	linkedProductID := ""
	if name := req.linkedName(); name != "" {
		id, err := s.resolver.ResolveOrCreate(ctx, name)
		if err != nil {
			return nil, &ResolutionError{Err: err}
		}
		linkRefs = append(linkRefs, id)
		linkedProductID = id
	}

	created, err := s.store.CreateRecord(ctx, s.table, map[string]interface{}{
		fieldProductName:       req.RecordID,
		fieldKeyFeatures:       req.KeyFeatures,
		fieldTargetAudience:    req.TargetAudience,
		fieldDescriptionLength: req.DescriptionLength,
		fieldGeneratedText:     req.GeneratedText,
		fieldProductLink:       linkRefs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create description record: %w", err)
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldTable:    s.table,
		logger.FieldRecordID: created.ID,
	}).Info("Saved generated description")

	return &domain.DescriptionRecord{
		ID:                created.ID,
		RecordID:          req.RecordID,
		LinkedProductID:   linkedProductID,
		KeyFeatures:       req.KeyFeatures,
		TargetAudience:    req.TargetAudience,
		DescriptionLength: req.DescriptionLength,
		GeneratedText:     req.GeneratedText,
	}, nil
}
