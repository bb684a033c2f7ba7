package repositories

import (
	"context"
	"time"

	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound is returned when no post matches the given ID
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// GetPostsByUserIDs pages through posts authored by any of userIDs in the page's order.
	GetPostsByUserIDs(ctx context.Context, userIDs []uint, page pagination.Page) ([]models.Post, int64, error)
	GetAllPosts(ctx context.Context, page pagination.Page) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the author/date index used by feeds and user listings
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

// CreatePost creates a new post in MongoDB. The ID is assigned here so the caller can
// store the attached file under it.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a stored post
		return nil, ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []uint, page pagination.Page) ([]models.Post, int64, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, 0, nil
	}
	return r.find(ctx, authorsFilter(userIDs), page)
}

// GetAllPosts retrieves all posts from MongoDB with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, page pagination.Page) ([]models.Post, int64, error) {
	return r.find(ctx, bson.M{}, page)
}

// authorsFilter matches posts written by any of userIDs.
func authorsFilter(userIDs []uint) bson.M {
	return bson.M{"user_id": bson.M{"$in": userIDs}}
}

// pageOptions selects page's window in its order (date descending by default). _id breaks
// ties in the same direction so pages never overlap.
func pageOptions(page pagination.Page) *options.FindOptions {
	sort := page.SortOrDefault()
	direction := 1
	if sort.Desc {
		direction = -1
	}
	return options.Find().
		SetSkip(page.Offset()).
		SetLimit(page.Limit()).
		SetSort(bson.D{{Key: sort.Field, Value: direction}, {Key: "_id", Value: direction}})
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, page pagination.Page) ([]models.Post, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, filter, pageOptions(page))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdatePost updates the editable fields of an existing post in MongoDB
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	post.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":      post.Title,
			"text":       post.Text,
			"created_at": post.CreatedAt,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
