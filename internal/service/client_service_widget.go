// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/utils"
	"github.com/SAMAymen/formix/internal/validators"
	"github.com/SAMAymen/formix/models"
	"github.com/google/uuid"
)

// SubmitCooldown is the minimum gap between two submissions from the same
// widget instance. It is enforced per instance, not per form, so one visitor
// hammering submit cannot be confused with two independent visitors.
const SubmitCooldown = 5 * time.Second

// clientWidgetService is the concrete implementation of ClientWidgetService.
// One instance corresponds to one rendered widget.
type clientWidgetService struct {
	api       adapter.WidgetAPI
	history   store.LocalStore
	validator validators.FieldValidator

	mu         sync.Mutex
	session    models.SessionToken
	lastSubmit time.Time

	// pendingKey is the idempotency key of the submission currently being
	// attempted. It survives failed attempts so a user-initiated resubmit of
	// the same answers is recognised server-side, and resets after success.
	pendingKey string

	logger *logger.Logger
}

// NewClientWidgetService constructs a ClientWidgetService with a fresh
// session token.
func NewClientWidgetService(api adapter.WidgetAPI, history store.LocalStore, logger *logger.Logger) (ClientWidgetService, error) {
	session, err := utils.NewSessionToken()
	if err != nil {
		return nil, err
	}

	return &clientWidgetService{
		api:       api,
		history:   history,
		validator: validators.NewFieldValidator(),
		session:   session,
		logger:    logger,
	}, nil
}

// ResetSession implements [ClientWidgetService].
func (c *clientWidgetService) ResetSession() error {
	session, err := utils.NewSessionToken()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
	c.pendingKey = ""

	return nil
}

// ValidateField implements [ClientWidgetService].
func (c *clientWidgetService) ValidateField(field models.Field, values []string) error {
	if field.MultiValue() || field.Type == models.FieldRadio {
		return c.validator.ValidateGroup(field, values)
	}

	var value string
	if len(values) > 0 {
		value = values[0]
	}
	return c.validator.ValidateValue(field, value)
}

// ProcessFormData implements [ClientWidgetService].
//
// Shaping rules: a key ending in "[]" loses the suffix and always submits an
// array; otherwise a field that collected exactly one value submits a scalar
// and anything else an array. Keys are the field ids from the schema;
// collected keys that no schema field claims are passed through untouched so
// hidden context values survive.
func (c *clientWidgetService) ProcessFormData(schema models.SchemaResponse, values map[string][]string) map[string]any {
	payload := make(map[string]any, len(values))

	for key, collected := range values {
		escaped := make([]string, 0, len(collected))
		for _, v := range collected {
			escaped = append(escaped, utils.EscapeHTML(v))
		}

		// A trailing "[]" marks a multi-value input: the suffix is stripped
		// and the value is always an array, even with one entry.
		if bare, found := strings.CutSuffix(key, "[]"); found {
			payload[bare] = escaped
			continue
		}

		if len(escaped) == 1 && !c.isMultiValueKey(schema, key) {
			payload[key] = escaped[0]
			continue
		}
		payload[key] = escaped
	}

	return payload
}

func (c *clientWidgetService) isMultiValueKey(schema models.SchemaResponse, key string) bool {
	for _, field := range schema.Fields {
		if field.FieldID == key || field.Label == key {
			return field.MultiValue()
		}
	}
	return false
}

// Submit implements [ClientWidgetService].
func (c *clientWidgetService) Submit(ctx context.Context, schema models.SchemaResponse, values map[string][]string) (models.SubmitResponse, error) {
	log := logger.FromContext(ctx)

	// The session gate comes before validation: a stale widget gets the
	// security message, never a field error.
	c.mu.Lock()
	if c.session.Expired(time.Now()) {
		c.mu.Unlock()
		return models.SubmitResponse{}, ErrSessionExpired
	}
	c.mu.Unlock()

	for _, field := range schema.Fields {
		if field.Type == models.FieldCTA {
			continue
		}
		fieldValues := values[field.FieldID]
		if fieldValues == nil {
			fieldValues = values[field.Label]
		}
		if err := c.ValidateField(field, fieldValues); err != nil {
			return models.SubmitResponse{}, fmt.Errorf("field %q: %w", fieldName(field), err)
		}
	}

	c.mu.Lock()
	if !c.lastSubmit.IsZero() && time.Since(c.lastSubmit) < SubmitCooldown {
		c.mu.Unlock()
		return models.SubmitResponse{}, ErrCooldownActive
	}
	c.lastSubmit = time.Now()
	if c.pendingKey == "" {
		c.pendingKey = uuid.NewString()
	}
	key := c.pendingKey
	token := c.session.Value
	c.mu.Unlock()

	payload := c.ProcessFormData(schema, values)
	payload["_idempotencyKey"] = key

	resp, err := c.api.Submit(ctx, schema.FormID, payload, token)
	if err != nil {
		log.Err(err).Str("form_id", schema.FormID).Msg("submission failed")
		return resp, err
	}

	c.mu.Lock()
	c.pendingKey = ""
	c.mu.Unlock()

	// Local history is advisory; a failed write never fails the submission.
	if c.history != nil {
		if err = c.history.RecordSubmission(ctx, schema.FormID, payload); err != nil {
			log.Debug().Err(err).Str("form_id", schema.FormID).Msg("failed to record submission history")
		}
	}

	return resp, nil
}
