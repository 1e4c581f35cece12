// Package store persists parsed design documents in MongoDB.
//
// Documents are stored as their full node tree plus bookkeeping metadata
// (name, content hash, node count, timestamps), so a stored design can be
// rebuilt without re-parsing the original export. An empty Mongo URI in the
// configuration disables the store; the CLI and server degrade gracefully.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mlorenz/scenetree/pkg/document"
	apperrors "github.com/mlorenz/scenetree/pkg/errors"
)

// ErrNotFound is returned when no stored document matches the given ID.
var ErrNotFound = errors.New("document not found")

// connectTimeout bounds the initial connection handshake.
const connectTimeout = 10 * time.Second

// Record is the persisted form of a parsed document.
type Record struct {
	ID        string     `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Hash      string     `bson:"hash" json:"hash"`
	NodeCount int        `bson:"node_count" json:"node_count"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	Root      storedNode `bson:"root" json:"-"`
}

// storedNode mirrors the document wire shape for BSON storage.
type storedNode struct {
	Name     string       `bson:"name"`
	Type     string       `bson:"type"`
	X        float64      `bson:"x"`
	Y        float64      `bson:"y"`
	Width    float64      `bson:"width"`
	Height   float64      `bson:"height"`
	Source   string       `bson:"source,omitempty"`
	Text     string       `bson:"text,omitempty"`
	Children []storedNode `bson:"children,omitempty"`
}

func toStored(n *document.Node) storedNode {
	out := storedNode{
		Name:   n.Name,
		Type:   n.Kind.String(),
		X:      n.X,
		Y:      n.Y,
		Width:  n.Width,
		Height: n.Height,
		Source: n.Source,
		Text:   n.Text,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toStored(c))
	}
	return out
}

func fromStored(s storedNode) *document.Node {
	n := &document.Node{
		Name:   s.Name,
		Kind:   document.KindFromString(s.Type),
		X:      s.X,
		Y:      s.Y,
		Width:  s.Width,
		Height: s.Height,
		Source: s.Source,
		Text:   s.Text,
	}
	for _, c := range s.Children {
		n.Children = append(n.Children, fromStored(c))
	}
	return n
}

// Store provides access to a MongoDB-backed document collection.
// All methods are safe for concurrent use.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials MongoDB at uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Save persists a parsed tree under the given display name and returns the
// created record. hash should be the content hash of the raw input so
// identical exports can be recognized; pass "" when unknown.
func (s *Store) Save(ctx context.Context, name, hash string, root *document.Node) (*Record, error) {
	if root == nil {
		return nil, fmt.Errorf("save: nil root")
	}
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	rec := &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      hash,
		NodeCount: root.Count(),
		CreatedAt: time.Now().UTC(),
		Root:      toStored(root),
	}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return rec, nil
}

// Load retrieves a stored document by ID and reconstructs its node tree.
func (s *Store) Load(ctx context.Context, id string) (*document.Node, *Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return fromStored(rec.Root), &rec, nil
}

// List returns all stored records, newest first, without their trees.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"root": 0})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	var records []Record
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return records, nil
}

// Delete removes a stored document by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
