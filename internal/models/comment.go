package models

// CommentNode — один узел разрешённого дерева комментариев: текст и
// дочерние ответы той же структуры. Глубина конечна (ответы в HN образуют
// DAG с корнем в истории, циклы невозможны).
type CommentNode struct {
	Text     string        `bson:"text"`
	Children []CommentNode `bson:"children,omitempty"`
}

// CommentRecord — документ коллекции comments.
//   - Refs — список «сырых» идентификаторов верхнего уровня на момент
//     последнего разрешения; Poller сравнивает его с количеством ссылок
//     в свежей выборке, чтобы не ставить повторную работу впустую;
//   - Comments — разрешённое дерево (nil до первого разрешения);
//   - Resolved — признак того, что дерево было построено хотя бы раз
//     (пустое, но разрешённое дерево отличается от неразрешённого).
type CommentRecord struct {
	StoryID  int64         `bson:"story_id"`
	Refs     []int64       `bson:"refs"`
	Comments []CommentNode `bson:"comments"`
	Resolved bool          `bson:"resolved"`
}

// SourceItem — сырой элемент источника при разрешении одного
// идентификатора комментария.
type SourceItem struct {
	ID      int64
	Text    string
	Kids    []int64
	Deleted bool
	Dead    bool
}

// CountNodes возвращает общее число узлов в дереве (для логов/метрик).
func CountNodes(nodes []CommentNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountNodes(n.Children)
	}

	return total
}
