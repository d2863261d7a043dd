package storage

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names as they exist in the deployed database.
const (
	UsersCollection      = "users"
	PropertiesCollection = "propertiesCollection"
	BookingsCollection   = "bookings"
	ReviewsCollection    = "reviews"
	ContactCollection    = "contact"
)

// ConnectFunc establishes a client against the store. Swappable in tests.
type ConnectFunc func(ctx context.Context, uri string) (*mongo.Client, error)

func defaultConnect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	return mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
}

// Store owns the process-wide database handle. The connection is
// established lazily on first use; concurrent first callers converge on a
// single connect attempt, and both the client and the connect error are
// retained for every later call.
type Store struct {
	uri    string
	dbName string

	connect ConnectFunc

	once   sync.Once
	client *mongo.Client
	db     *mongo.Database
	err    error
}

// New prepares a store without connecting yet.
func New(uri, dbName string) *Store {
	return &Store{uri: uri, dbName: dbName, connect: defaultConnect}
}

// NewWithConnect is like New with a custom connect function.
func NewWithConnect(uri, dbName string, connect ConnectFunc) *Store {
	return &Store{uri: uri, dbName: dbName, connect: connect}
}

// Database returns the shared database handle, connecting on first call.
func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {
	s.once.Do(func() {
		client, err := s.connect(ctx, s.uri)
		if err != nil {
			s.err = err
			logrus.WithError(err).Error("failed to connect to the document store")
			return
		}
		s.client = client
		s.db = client.Database(s.dbName)
		logrus.WithField("database", s.dbName).Info("connected to the document store")
	})
	return s.db, s.err
}

// Collection resolves a named collection on the shared handle.
func (s *Store) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Disconnect tears the client down. Only called on shutdown.
func (s *Store) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
