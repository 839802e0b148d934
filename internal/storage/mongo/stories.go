package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/hackerbabel/internal/models"
	"github.com/pribylovaa/hackerbabel/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// titleDoc — документ коллекции titles: карта заголовков по языкам,
// скоррелированная с историей по story_id. Обновления точечные,
// через dotted-path ($set "titles.<LANG>.<field>"), поэтому конкурентные
// job-ы разных языков одной истории пишут непересекающиеся подключи.
type titleDoc struct {
	StoryID int64                   `bson:"story_id"`
	Titles  map[string]models.Title `bson:"titles"`
}

// statusField и titleField собирают dotted-path до подключей одного языка.
func statusField(lang string) string { return "titles." + lang + ".translation_status" }
func titleField(lang string) string  { return "titles." + lang + ".title" }

// SaveStory сохраняет новую историю: статья, карта заголовков и запись
// комментариев с «сырыми» ссылками. Вставка безусловная — защита от дублей
// это предварительный StoryByID вызывающей стороны плюс уникальный индекс.
func (m *Mongo) SaveStory(ctx context.Context, story models.Story) error {
	const op = "storage/mongo/SaveStory"

	if _, err := m.articles.InsertOne(ctx, story); err != nil {
		return fmt.Errorf("%s: insert article: %w", op, err)
	}

	td := titleDoc{StoryID: story.ID, Titles: story.Titles}
	if _, err := m.titles.InsertOne(ctx, td); err != nil {
		return fmt.Errorf("%s: insert titles: %w", op, err)
	}

	rec := models.CommentRecord{
		StoryID:  story.ID,
		Refs:     story.CommentRefs,
		Comments: nil,
		Resolved: false,
	}
	if _, err := m.comments.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%s: insert comments: %w", op, err)
	}

	return nil
}

// StoryByID возвращает историю вместе с заголовками и «сырыми» ссылками
// комментариев. Отсутствие статьи — storage.ErrNotFound; отсутствие
// скоррелированных документов titles/comments не фатально (корреляция
// рекомендательная), соответствующие поля остаются пустыми.
func (m *Mongo) StoryByID(ctx context.Context, id int64) (*models.Story, error) {
	const op = "storage/mongo/StoryByID"

	var story models.Story
	if err := m.articles.FindOne(ctx, bson.D{{Key: "story_id", Value: id}}).Decode(&story); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: find article: %w", op, err)
	}

	var td titleDoc
	err := m.titles.FindOne(ctx, bson.D{{Key: "story_id", Value: id}}).Decode(&td)
	switch {
	case err == nil:
		story.Titles = td.Titles
	case errors.Is(err, mongodriver.ErrNoDocuments):
		// titles-документ ещё не создан — оставляем карту пустой.
	default:
		return nil, fmt.Errorf("%s: find titles: %w", op, err)
	}

	var rec models.CommentRecord
	err = m.comments.FindOne(ctx, bson.D{{Key: "story_id", Value: id}}).Decode(&rec)
	switch {
	case err == nil:
		story.CommentRefs = rec.Refs
	case errors.Is(err, mongodriver.ErrNoDocuments):
	default:
		return nil, fmt.Errorf("%s: find comments: %w", op, err)
	}

	return &story, nil
}

// NewestStories возвращает до limit последних историй, новые первыми
// (порядок вставки, _id DESC).
func (m *Mongo) NewestStories(ctx context.Context, limit int64) ([]models.Story, error) {
	const op = "storage/mongo/NewestStories"

	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := m.articles.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var stories []models.Story
	for cur.Next(ctx) {
		var story models.Story
		if err := cur.Decode(&story); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		stories = append(stories, story)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	// Заголовки подтягиваем отдельными точечными чтениями: выдача короткая
	// (limit = размер топа), а join в этой схеме рекомендательный.
	for i := range stories {
		var td titleDoc
		err := m.titles.FindOne(ctx, bson.D{{Key: "story_id", Value: stories[i].ID}}).Decode(&td)
		switch {
		case err == nil:
			stories[i].Titles = td.Titles
		case errors.Is(err, mongodriver.ErrNoDocuments):
		default:
			return nil, fmt.Errorf("%s: find titles: %w", op, err)
		}
	}

	return stories, nil
}

// CommentRecordByID возвращает запись комментариев истории. Текст узлов
// восстанавливается из экранированной формы перед выдачей.
func (m *Mongo) CommentRecordByID(ctx context.Context, id int64) (*models.CommentRecord, error) {
	const op = "storage/mongo/CommentRecordByID"

	var rec models.CommentRecord
	if err := m.comments.FindOne(ctx, bson.D{{Key: "story_id", Value: id}}).Decode(&rec); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec.Comments = unescapeTree(rec.Comments)

	return &rec, nil
}

// SaveCommentTree записывает разрешённое дерево вместе со списком ссылок,
// из которого оно построено. Текст узлов экранируется перед записью.
// Upsert: запись восстанавливается, даже если документ комментариев
// потерян (корреляция рекомендательная).
func (m *Mongo) SaveCommentTree(ctx context.Context, id int64, refs []int64, tree []models.CommentNode) error {
	const op = "storage/mongo/SaveCommentTree"

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "refs", Value: refs},
		{Key: "comments", Value: escapeTree(tree)},
		{Key: "resolved", Value: true},
	}}}

	opts := options.Update().SetUpsert(true)
	if _, err := m.comments.UpdateOne(ctx, bson.D{{Key: "story_id", Value: id}}, update, opts); err != nil {
		return fmt.Errorf("%s: update: %w", op, err)
	}

	return nil
}

// UpdateTitleStatus продвигает статус перевода пары (story, lang) строго
// вперёд. Монотонность обеспечивается фильтром условного обновления:
// документ матчится только если текущий статус — допустимый предшественник
// нового. Непрошедшее обновление на существующей истории — ErrStaleStatus.
func (m *Mongo) UpdateTitleStatus(ctx context.Context, id int64, lang string, next models.TranslationStatus) error {
	const op = "storage/mongo/UpdateTitleStatus"

	preds := next.Predecessors()
	if len(preds) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrStaleStatus)
	}

	filter := bson.D{
		{Key: "story_id", Value: id},
		{Key: statusField(lang), Value: bson.D{{Key: "$in", Value: preds}}},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: statusField(lang), Value: next},
	}}}

	res, err := m.titles.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%s: update: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return m.classifyStaleTitle(ctx, op, id)
	}

	return nil
}

// SetTranslatedTitle атомарно записывает переведённый текст и статус done.
// Допустимый предшественник — только pending: завершённый перевод не может
// быть перезаписан отставшим job-ом.
func (m *Mongo) SetTranslatedTitle(ctx context.Context, id int64, lang string, text string) error {
	const op = "storage/mongo/SetTranslatedTitle"

	filter := bson.D{
		{Key: "story_id", Value: id},
		{Key: statusField(lang), Value: models.StatusPending},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: titleField(lang), Value: text},
		{Key: statusField(lang), Value: models.StatusDone},
	}}}

	res, err := m.titles.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%s: update: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return m.classifyStaleTitle(ctx, op, id)
	}

	return nil
}

// classifyStaleTitle различает «истории нет вовсе» (ErrNotFound) и
// «история есть, но переход недопустим» (ErrStaleStatus).
func (m *Mongo) classifyStaleTitle(ctx context.Context, op string, id int64) error {
	err := m.titles.FindOne(ctx, bson.D{{Key: "story_id", Value: id}}).Err()
	switch {
	case errors.Is(err, mongodriver.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case err != nil:
		return fmt.Errorf("%s: find titles: %w", op, err)
	default:
		return fmt.Errorf("%s: %w", op, storage.ErrStaleStatus)
	}
}
