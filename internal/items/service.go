/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package items

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/errors"
)

const entityType = "item"

// Service implements the item operations. Writes run in a transaction and
// re-read the item before committing, so the returned item is what was stored.
type Service struct {
	ctx      Context
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a service over ctx
func NewService(ctx Context, log zerolog.Logger) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		ctx:      ctx,
		validate: v,
		log:      log,
	}
}

// Item returns the item with the given id
func (s *Service) Item(ctx context.Context, id entity.ID) (*Item, error) {
	item, err := s.ctx.Items().Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.NewNotFoundError(entityType, id.String())
	}
	return item, nil
}

// AllItems returns every item
func (s *Service) AllItems(ctx context.Context) ([]Item, error) {
	return s.ctx.Items().RetrieveAll(ctx)
}

// FindItems returns the items matching filter
func (s *Service) FindItems(ctx context.Context, filter Filter) ([]Item, error) {
	return s.ctx.Items().FindAll(ctx, filter)
}

// ItemsPage returns a window over the items matching filter
func (s *Service) ItemsPage(ctx context.Context, filter Filter, offset, limit int) ([]Item, error) {
	return s.ctx.Items().FindPage(ctx, filter, offset, limit)
}

// CreateItem stores a new item and returns it
func (s *Service) CreateItem(ctx context.Context, spec Spec) (*Item, error) {
	if err := s.check(spec); err != nil {
		return nil, err
	}

	var created *Item
	err := s.inTransaction(ctx, func(tx Context) error {
		id, err := tx.Items().Create(ctx, spec)
		if err != nil {
			return err
		}
		created, err = tx.Items().Retrieve(ctx, id)
		if err != nil {
			return err
		}
		if created == nil {
			return fmt.Errorf("item %s could not be retrieved following creation", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("id", created.ID.String()).Msg("item created")
	return created, nil
}

// UpdateItem applies patch and returns the updated item
func (s *Service) UpdateItem(ctx context.Context, patch Patch) (*Item, error) {
	if err := s.check(patch); err != nil {
		return nil, err
	}

	var updated *Item
	err := s.inTransaction(ctx, func(tx Context) error {
		found, err := tx.Items().Update(ctx, patch)
		if err != nil {
			return err
		}
		if !found {
			return errors.NewNotFoundError(entityType, patch.ID.String())
		}
		updated, err = tx.Items().Retrieve(ctx, patch.ID)
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("item %s could not be retrieved following update", patch.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("id", updated.ID.String()).Msg("item updated")
	return updated, nil
}

// DeleteItem removes the item with the given id
func (s *Service) DeleteItem(ctx context.Context, id entity.ID) error {
	err := s.inTransaction(ctx, func(tx Context) error {
		deleted, err := tx.Items().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return errors.NewNotFoundError(entityType, id.String())
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Str("id", id.String()).Msg("item deleted")
	return nil
}

// inTransaction commits when fn succeeds and aborts otherwise.
func (s *Service) inTransaction(ctx context.Context, fn func(tx Context) error) error {
	tx, err := s.ctx.StartTransaction(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if abortErr := tx.AbortTransaction(ctx); abortErr != nil {
			s.log.Warn().Err(abortErr).Msg("failed to abort transaction")
		}
		return err
	}
	return tx.CommitTransaction(ctx)
}

// check runs the validate tags of v and reports the first failure as a ValidationError.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(fe.Field(), describe(fe))
	}
	return errors.NewValidationError("", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "must not be empty"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
