package mongo

import (
	"strings"

	"github.com/pribylovaa/hackerbabel/internal/models"
)

// Слой хранения запрещает литеральные '.' и '$' в тексте комментариев.
// Подстановка обратима: символы заменяются полноширинными аналогами
// (U+FF0E, U+FF04) на записи и восстанавливаются на чтении.
var (
	escaper   = strings.NewReplacer(".", "．", "$", "＄")
	unescaper = strings.NewReplacer("．", ".", "＄", "$")
)

// EscapeText заменяет зарезервированные символы обратимой подстановкой.
func EscapeText(s string) string {
	return escaper.Replace(s)
}

// UnescapeText — обратная подстановка; Unescape(Escape(s)) == s.
func UnescapeText(s string) string {
	return unescaper.Replace(s)
}

// escapeTree возвращает копию дерева с экранированным текстом узлов.
func escapeTree(nodes []models.CommentNode) []models.CommentNode {
	return mapTree(nodes, EscapeText)
}

// unescapeTree возвращает копию дерева с восстановленным текстом узлов.
func unescapeTree(nodes []models.CommentNode) []models.CommentNode {
	return mapTree(nodes, UnescapeText)
}

func mapTree(nodes []models.CommentNode, fn func(string) string) []models.CommentNode {
	if nodes == nil {
		return nil
	}

	out := make([]models.CommentNode, len(nodes))
	for i, n := range nodes {
		out[i] = models.CommentNode{
			Text:     fn(n.Text),
			Children: mapTree(n.Children, fn),
		}
	}

	return out
}
