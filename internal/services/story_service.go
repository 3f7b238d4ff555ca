package services

import (
	"time"

	"instalab_backend/internal/models"
	"instalab_backend/internal/repositories"
	"instalab_backend/internal/services/dto"
	"instalab_backend/pkg/apperrors"
)

const storyLifetime = 24 * time.Hour

type StoryService interface {
	Create(userID string, req *dto.CreateStoryRequest) (*dto.StoryDTO, error)
	Get(viewerID, storyID string) (*dto.StoryDTO, error)
	Delete(userID, storyID string) error
	View(viewerID, storyID string) (*dto.StoryDTO, error)
	StoriesBar(viewerID string) ([]dto.StoryGroupDTO, error)
	Highlights(userID string) ([]dto.StoryDTO, error)
}

type StoryServiceImpl struct {
	storyRepo repositories.StoryRepository
	jobRepo   repositories.JobRepository
}

func NewStoryService(storyRepo repositories.StoryRepository, jobRepo repositories.JobRepository) StoryService {
	return &StoryServiceImpl{
		storyRepo: storyRepo,
		jobRepo:   jobRepo,
	}
}

func (s *StoryServiceImpl) Create(userID string, req *dto.CreateStoryRequest) (*dto.StoryDTO, error) {
	if req.RelatedJobID != nil {
		if _, err := s.jobRepo.FindByID(*req.RelatedJobID); err != nil {
			if apperrors.Is(err, repositories.ErrJobNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	story := &models.Story{
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		StoryType:     models.StoryTypeGeneral,
		ImageURL:      req.ImageURL,
		ExternalLink:  req.ExternalLink,
		RelatedJobID:  req.RelatedJobID,
		Data:          req.Data,
		IsHighlighted: req.IsHighlighted,
		IsActive:      true,
		ExpiresAt:     time.Now().Add(storyLifetime),
	}
	if req.StoryType != "" {
		story.StoryType = models.StoryType(req.StoryType)
	}

	if err := s.storyRepo.Create(story); err != nil {
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToStoryDTO(story, 0, false)
	return &d, nil
}

func (s *StoryServiceImpl) Get(viewerID, storyID string) (*dto.StoryDTO, error) {
	story, err := s.findVisibleStory(viewerID, storyID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(story, viewerID)
}

func (s *StoryServiceImpl) Delete(userID, storyID string) error {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStoryNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if story.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.storyRepo.Deactivate(storyID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// View records the view (idempotent) and returns the refreshed story.
func (s *StoryServiceImpl) View(viewerID, storyID string) (*dto.StoryDTO, error) {
	story, err := s.findVisibleStory(viewerID, storyID)
	if err != nil {
		return nil, err
	}

	if story.UserID != viewerID {
		if err := s.storyRepo.RecordView(&models.StoryView{StoryID: storyID, ViewerID: viewerID}); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.toDTO(story, viewerID)
}

// StoriesBar groups every active story by author, newest author first, with
// the viewer's unviewed counts.
func (s *StoryServiceImpl) StoriesBar(viewerID string) ([]dto.StoryGroupDTO, error) {
	stories, err := s.storyRepo.FindActive(time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(stories) == 0 {
		return []dto.StoryGroupDTO{}, nil
	}

	ids := make([]string, 0, len(stories))
	for i := range stories {
		ids = append(ids, stories[i].ID)
	}
	viewedIDs, err := s.storyRepo.FindViewedStoryIDs(viewerID, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	viewed := make(map[string]bool, len(viewedIDs))
	for _, id := range viewedIDs {
		viewed[id] = true
	}

	groupIndex := make(map[string]int)
	groups := make([]dto.StoryGroupDTO, 0)
	for i := range stories {
		story := &stories[i]

		count, err := s.storyRepo.CountViews(story.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		storyDTO := dto.ToStoryDTO(story, count, viewed[story.ID])

		idx, ok := groupIndex[story.UserID]
		if !ok {
			group := dto.StoryGroupDTO{Stories: []dto.StoryDTO{}}
			if story.User != nil {
				group.User = dto.ToUserDTO(story.User, false)
			}
			groups = append(groups, group)
			idx = len(groups) - 1
			groupIndex[story.UserID] = idx
		}
		groups[idx].Stories = append(groups[idx].Stories, storyDTO)
		if !viewed[story.ID] {
			groups[idx].UnviewedCount++
		}
	}

	return groups, nil
}

func (s *StoryServiceImpl) Highlights(userID string) ([]dto.StoryDTO, error) {
	stories, err := s.storyRepo.FindHighlightedByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.StoryDTO, 0, len(stories))
	for i := range stories {
		count, err := s.storyRepo.CountViews(stories[i].ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		items = append(items, dto.ToStoryDTO(&stories[i], count, false))
	}
	return items, nil
}

// findVisibleStory hides expired non-highlighted stories from everyone except
// their author.
func (s *StoryServiceImpl) findVisibleStory(viewerID, storyID string) (*models.Story, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	expired := !story.IsActive || time.Now().After(story.ExpiresAt)
	if expired && !story.IsHighlighted && story.UserID != viewerID {
		return nil, apperrors.ErrStoryExpired
	}
	return story, nil
}

func (s *StoryServiceImpl) toDTO(story *models.Story, viewerID string) (*dto.StoryDTO, error) {
	count, err := s.storyRepo.CountViews(story.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	viewedByMe := false
	if viewerID != "" {
		viewedIDs, err := s.storyRepo.FindViewedStoryIDs(viewerID, []string{story.ID})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		viewedByMe = len(viewedIDs) > 0
	}

	d := dto.ToStoryDTO(story, count, viewedByMe)
	return &d, nil
}
