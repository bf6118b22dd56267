package tagcloud_service

import (
	"context"
	"log/slog"
	"sort"

	"personal-site-service/internal/logger"
	"personal-site-service/internal/model"
	tag_repository "personal-site-service/internal/repository/tag"
)

type TagCloudService struct {
	tagRepo tag_repository.Repository
	log     *logger.Logger
}

func NewTagCloudService(tagRepo tag_repository.Repository, log *logger.Logger) *TagCloudService {
	return &TagCloudService{tagRepo: tagRepo, log: log}
}

func (s *TagCloudService) Aggregate(ctx context.Context) ([]*model.TagCount, error) {
	return s.aggregate(ctx, nil)
}

func (s *TagCloudService) AggregateKind(ctx context.Context, kind model.ContentKind) ([]*model.TagCount, error) {
	return s.aggregate(ctx, &kind)
}

func (s *TagCloudService) aggregate(ctx context.Context, kind *model.ContentKind) ([]*model.TagCount, error) {
	rows, err := s.tagRepo.CountByKind(ctx, kind)
	if err != nil {
		s.log.Error("Failed to count tagged items", slog.String("error", err.Error()))
		return nil, err
	}

	byTag := make(map[int64]*model.TagCount)
	for _, row := range rows {
		entry, ok := byTag[row.Tag.ID]
		if !ok {
			entry = &model.TagCount{
				Tag:    row.Tag,
				Counts: make(map[model.ContentKind]int64),
			}
			byTag[row.Tag.ID] = entry
		}
		entry.Counts[row.Kind] += row.Count
		entry.Total += row.Count
	}

	result := make([]*model.TagCount, 0, len(byTag))
	for _, entry := range byTag {
		if entry.Total == 0 {
			continue
		}
		result = append(result, entry)
	}

	// Total desc, tag name asc on equal totals.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Tag.Name < result[j].Tag.Name
	})

	return result, nil
}

func (s *TagCloudService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list tags", slog.String("error", err.Error()))
		return nil, err
	}
	return tags, nil
}
