package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/pkg/log"
)

// handleResolveComments разворачивает список «сырых» ссылок истории в
// вложенное дерево текстов и записывает его в сторадж вместе со ссылками,
// из которых оно построено (по ним Poller решает, не устарело ли дерево).
//
// Разрешение — чистая функция списка ссылок: тот же вход даёт структурно
// идентичное дерево (с точностью до конкурентных правок на стороне
// источника, которые здесь не отслеживаются). Повторное разрешение
// полностью разрешённого дерева — no-op по содержимому.
func (s *Service) handleResolveComments(ctx context.Context, job models.Job) error {
	const op = "service/comments/handleResolveComments"

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.Int64("story_id", job.StoryID),
	)

	lg.Info("resolve_comments_start", slog.Int("refs", len(job.Refs)))

	tree := s.resolveRefs(ctx, job.Refs)

	if err := s.storage.SaveCommentTree(ctx, job.StoryID, job.Refs, tree); err != nil {
		return fmt.Errorf("%s: save tree: %w", op, err)
	}

	lg.Info("resolve_comments_done", slog.Int("nodes", models.CountNodes(tree)))

	return nil
}

// resolveRefs разворачивает упорядоченный список ссылок в узлы дерева:
// в ширину по текущему уровню, в глубину по каждой ветке. Ссылка без
// текста (удалённый/мёртвый/несуществующий элемент) или с ошибкой
// разрешения вырезается из детей родителя целиком — оставшиеся соседи
// сохраняют исходный относительный порядок.
func (s *Service) resolveRefs(ctx context.Context, refs []int64) []models.CommentNode {
	const op = "service/comments/resolveRefs"

	nodes := make([]models.CommentNode, 0, len(refs))
	for _, ref := range refs {
		if ctx.Err() != nil {
			return nodes
		}

		item, err := s.source.Item(ctx, ref)
		if err != nil {
			// Неразрешимая ссылка: локальное восстановление, не фатально
			// для дерева.
			log.From(ctx).Warn("comment_resolve_failed",
				slog.String("op", op),
				slog.Int64("ref", ref),
				slog.String("err", err.Error()),
			)
			continue
		}

		if item == nil || item.Deleted || item.Dead || strings.TrimSpace(item.Text) == "" {
			continue
		}

		nodes = append(nodes, models.CommentNode{
			Text:     item.Text,
			Children: s.resolveRefs(ctx, item.Kids),
		})
	}

	return nodes
}
