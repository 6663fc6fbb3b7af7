package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/weekcal/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	Get(ctx context.Context, uid string) (Profile, error)
	// Find looks a profile up by uid first and by name second.
	Find(ctx context.Context, ref string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
	Delete(ctx context.Context, uid string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, profile Profile) (Profile, error) {
	profile, err := profile.validate()
	if err != nil {
		return Profile{}, err
	}
	profile.Uid = uuid.NewString()

	created, err := s.repo.Store(ctx, profile)
	if err != nil {
		return Profile{}, err
	}
	log.Debugf("Created profile %s (%s)", created.Name, created.Uid)
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Profile, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) Find(ctx context.Context, ref string) (Profile, error) {
	if _, err := uuid.Parse(ref); err == nil {
		profile, err := s.repo.GetByUid(ctx, ref)
		if err == nil || !errors.Is(err, ErrProfileNotFound) {
			return profile, err
		}
	}
	return s.repo.GetByName(ctx, ref)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, profile Profile) (Profile, error) {
	profile, err := profile.validate()
	if err != nil {
		return Profile{}, err
	}

	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		return Profile{}, err
	}

	// The profile is already stored at this point. A failing subscriber only leaves a stale
	// cache entry behind, so the error is logged rather than returned.
	s.publish(ctx, event_bus.ProfileUpdatedEvent, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) error {
	profile, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, uid)
	}

	s.publish(ctx, event_bus.ProfileDeletedEvent, profile)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, profile Profile) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.ProfileChanged{
		Uid:  profile.Uid,
		Name: profile.Name,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event for profile %s: %v", eventType, profile.Uid, err)
	}
}
