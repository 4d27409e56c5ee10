package store

import (
	"context"
	"fmt"

	"github.com/ic-coder123/bookverse/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findAll[models.Book](ctx, db.Books(), bson.M{})
}

func (s *MongoStorage) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return findOne[models.Book](ctx, db.Books(), bson.M{"_id": id})
}

func (s *MongoStorage) CreateBook(ctx context.Context, book models.NewBook) (*models.Book, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	id, err := db.NextID(ctx, booksCollection)
	if err != nil {
		return nil, err
	}
	b := &models.Book{
		ID:            id,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		CoverImage:    book.CoverImage,
		Genre:         book.Genre,
		AmazonURL:     book.AmazonURL,
		AverageRating: NoRating,
		TotalReviews:  0,
		CreatedAt:     s.now(),
	}
	if _, err := db.Books().InsertOne(ctx, b, options.InsertOne()); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (s *MongoStorage) UpdateBook(ctx context.Context, id int64, update models.BookUpdate) (*models.Book, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	if set := update.Fields(); len(set) > 0 {
		if _, err := db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update book: %w", err)
		}
	}
	return findOne[models.Book](ctx, db.Books(), bson.M{"_id": id})
}

// DeleteBook removes the book and then its reviews. A failure while removing
// the reviews leaves the book deleted.
func (s *MongoStorage) DeleteBook(ctx context.Context, id int64) (bool, error) {
	db, err := s.db(ctx)
	if err != nil {
		return false, err
	}
	res, err := db.Books().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := db.Reviews().DeleteMany(ctx, bson.M{"bookId": id}); err != nil {
		return true, fmt.Errorf("delete reviews of book %d: %w", id, err)
	}
	return true, nil
}

// refreshBookRating recomputes averageRating and totalReviews from the
// book's current reviews. Missing books are left alone.
func (s *MongoStorage) refreshBookRating(ctx context.Context, db *DB, bookID int64) error {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bookId": bookID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := db.Reviews().Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate ratings of book %d: %w", bookID, err)
	}
	defer cur.Close(ctx)
	var totals []struct {
		Sum   int64 `bson:"sum"`
		Count int   `bson:"count"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return fmt.Errorf("decode ratings of book %d: %w", bookID, err)
	}
	var sum int64
	count := 0
	if len(totals) > 0 {
		sum, count = totals[0].Sum, totals[0].Count
	}
	_, err = db.Books().UpdateOne(ctx, bson.M{"_id": bookID}, bson.M{"$set": bson.M{
		"averageRating": FormatAverage(sum, count),
		"totalReviews":  count,
	}})
	if err != nil {
		return fmt.Errorf("update rating of book %d: %w", bookID, err)
	}
	return nil
}
