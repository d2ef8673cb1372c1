package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/normalize"
	"github.com/dalemusser/gracehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "member"|"pastor"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func findOne(ctx context.Context, c *mongo.Collection, filter bson.M) (*models.User, error) {
	var u models.User
	if err := c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne(ctx, s.c, bson.M{"_id": id})
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne(ctx, s.c, bson.M{"email": normalize.Email(email)})
}

// GetByIdentifier matches either the email or the display name
// (case/diacritics folded). Email wins when both could match.
func (s *Store) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if u, err := s.GetByEmail(ctx, identifier); !errors.Is(err, ErrNotFound) {
		return u, err
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(normalize.Name(identifier))}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExists reports whether the email is already registered.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"email": normalize.Email(email)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new user after normalizing fields. The unique email index
// turns a concurrent duplicate signup into ErrDuplicateEmail.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Phone = normalize.Phone(u.Phone)
	u.Role = normalize.Role(u.Role)
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	if u.Role != models.RoleMember && u.Role != models.RolePastor {
		return models.User{}, errBadRole
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListMembers returns every non-pastor user, oldest member first.
func (s *Store) ListMembers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$ne": models.RolePastor}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPastor returns the earliest-joined pastor.
func (s *Store) GetPastor(ctx context.Context) (*models.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"role": models.RolePastor}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByIDs returns the users with the given ids keyed by id. Missing ids are
// simply absent from the map.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	proj := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "role": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// SetImageURL sets the profile picture, or removes it when url is nil.
func (s *Store) SetImageURL(ctx context.Context, id primitive.ObjectID, url *string) error {
	update := bson.M{"$unset": bson.M{"image_url": ""}}
	if url != nil {
		update = bson.M{"$set": bson.M{"image_url": *url}}
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRoleByEmail assigns role to the account registered under email.
// Returns ErrNotFound when no such account exists.
func (s *Store) SetRoleByEmail(ctx context.Context, email, role string) (changed bool, err error) {
	if role != models.RoleMember && role != models.RolePastor {
		return false, errBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"email": normalize.Email(email)}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes a user. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* ---------------------------- password reset ---------------------------- */

// SetResetToken stores a reset token and its expiry, replacing any earlier one.
func (s *Store) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RedeemResetToken atomically replaces the password hash of the user holding
// an unexpired token and clears the token, so it can be used only once.
func (s *Store) RedeemResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	filter := bson.M{
		"reset_token":        token,
		"reset_token_expiry": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash},
		"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
	}
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redeem reset token: %w", err)
	}
	return &u, nil
}

// ClearExpiredResetTokens unsets tokens that expired at or before now.
func (s *Store) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"reset_token_expiry": bson.M{"$lte": now}},
		bson.M{"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
