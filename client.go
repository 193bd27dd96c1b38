package datomic

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/peregrinedb/datomic-go/edn"
)

// Client is a Datomic REST API client. It issues one blocking HTTP request
// per call and surfaces every failure to the caller; retry policy, if any,
// belongs to the caller.
type Client struct {
	cfg      Config
	http     *resty.Client
	logger   Logger
	metrics  Metrics
	registry *edn.TagRegistry
}

// NewClient creates a client for the REST endpoint described by cfg, with
// no-op logging and metrics.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Location, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/edn")

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		logger:  &NoOpLogger{},
		metrics: &NoOpMetrics{},
	}, nil
}

// WithLogger sets the logger for this client
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithMetrics sets the metrics collector for this client
func (c *Client) WithMetrics(metrics Metrics) *Client {
	c.metrics = metrics
	return c
}

// WithRegistry sets a custom EDN tag registry used when decoding responses.
// Configure it before issuing concurrent requests.
func (c *Client) WithRegistry(registry *edn.TagRegistry) *Client {
	c.registry = registry
	return c
}

// DB returns a handle binding a database name to this client
func (c *Client) DB(name string) *Database {
	return &Database{name: name, client: c}
}

// CreateDatabase creates a database and returns a handle to it. Creating a
// database that already exists is not an error on the REST API.
func (c *Client) CreateDatabase(ctx context.Context, name string) (*Database, error) {
	url := c.dbURL("")
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"db-name": name}).
		Post(url)
	if err != nil {
		return nil, c.transportError(url, err)
	}
	if err := expectStatus("create-database", url, resp, 200, 201); err != nil {
		return nil, err
	}
	c.logger.Debug("database created", "db", name)
	return c.DB(name), nil
}

// Transact executes a transaction. Each element of txData is an EDN form
// (typically a map) that becomes one element of the tx-data vector. The
// result map carries the usual :db-before, :db-after, :tx-data and
// :tempids keys.
func (c *Client) Transact(ctx context.Context, dbname string, txData ...string) (edn.Map, error) {
	start := time.Now()
	url := c.dbURL(dbname) + "/"
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"tx-data": "[" + strings.Join(txData, "\n") + "\n]"}).
		Post(url)
	c.metrics.Timing(MetricTransactDuration, time.Since(start))
	if err != nil {
		c.metrics.Increment(MetricTransactError)
		return nil, c.transportError(url, err)
	}
	if err := expectStatus("transact", url, resp, 200, 201); err != nil {
		c.metrics.Increment(MetricTransactError)
		return nil, err
	}

	v, err := c.parseResponse(resp.Body())
	if err != nil {
		c.metrics.Increment(MetricTransactError)
		return nil, err
	}
	result, ok := v.(edn.Map)
	if !ok {
		c.metrics.Increment(MetricTransactError)
		return nil, WithContext(ErrUnexpectedShape, map[string]interface{}{
			"operation": "transact",
			"expected":  "map",
			"got":       typeName(v),
		})
	}
	c.metrics.Increment(MetricTransactSuccess)
	c.logger.Debug("transaction committed", "db", dbname, "forms", len(txData))
	return result, nil
}

// QueryOptions tunes a single query call
type QueryOptions struct {
	// History queries the full history of the database
	History bool

	// Args holds extra EDN-rendered query inputs appended after the
	// database alias
	Args []string
}

// Query runs a Datalog query and returns the result as a vector of row
// vectors.
func (c *Client) Query(ctx context.Context, dbname, query string, opts *QueryOptions) (edn.Vector, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}
	start := time.Now()

	args := "[{:db/alias " + c.cfg.Storage + "/" + dbname
	if opts.History {
		args += " :history true"
	}
	args += "} " + strings.Join(opts.Args, " ") + "]"

	url := "/api/query"
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"args": args, "q": query}).
		Get(url)
	c.metrics.Timing(MetricQueryDuration, time.Since(start))
	if err != nil {
		c.metrics.Increment(MetricQueryError)
		return nil, c.transportError(url, err)
	}
	if err := expectStatus("query", url, resp, 200); err != nil {
		c.metrics.Increment(MetricQueryError)
		return nil, err
	}

	v, err := c.parseResponse(resp.Body())
	if err != nil {
		c.metrics.Increment(MetricQueryError)
		return nil, err
	}
	rows, ok := v.(edn.Vector)
	if !ok {
		c.metrics.Increment(MetricQueryError)
		return nil, WithContext(ErrUnexpectedShape, map[string]interface{}{
			"operation": "query",
			"expected":  "vector of rows",
			"got":       typeName(v),
		})
	}
	c.metrics.Increment(MetricQuerySuccess)
	c.metrics.Histogram(MetricQueryRows, float64(len(rows)))
	c.logger.Debug("query executed", "db", dbname, "rows", len(rows))
	return rows, nil
}

// Entity retrieves an entity by ID as a map keyed by attribute keywords
// like ":person/name".
func (c *Client) Entity(ctx context.Context, dbname string, eid int64) (edn.Map, error) {
	start := time.Now()
	url := c.dbURL(dbname) + "/-/entity"
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("e", strconv.FormatInt(eid, 10)).
		Get(url)
	c.metrics.Timing(MetricEntityDuration, time.Since(start))
	if err != nil {
		c.metrics.Increment(MetricEntityError)
		return nil, c.transportError(url, err)
	}
	if err := expectStatus("entity", url, resp, 200); err != nil {
		c.metrics.Increment(MetricEntityError)
		return nil, err
	}

	v, err := c.parseResponse(resp.Body())
	if err != nil {
		c.metrics.Increment(MetricEntityError)
		return nil, err
	}
	entity, ok := v.(edn.Map)
	if !ok {
		c.metrics.Increment(MetricEntityError)
		return nil, WithContext(ErrUnexpectedShape, map[string]interface{}{
			"operation": "entity",
			"expected":  "map",
			"got":       typeName(v),
		})
	}
	c.metrics.Increment(MetricEntitySuccess)
	return entity, nil
}

// dbURL builds the path for one database, relative to the base URL
func (c *Client) dbURL(dbname string) string {
	return "/data/" + c.cfg.Storage + "/" + dbname
}

// parseResponse decodes an EDN response body, routing through the custom
// tag registry when one is configured.
func (c *Client) parseResponse(body []byte) (edn.Value, error) {
	start := time.Now()
	r, err := edn.NewReaderBytes(body)
	if err != nil {
		c.metrics.Increment(MetricParseError)
		return nil, err
	}
	if c.registry != nil {
		r.WithRegistry(c.registry)
	}
	v, err := r.Read()
	c.metrics.Timing(MetricParseDuration, time.Since(start))
	if err != nil {
		c.metrics.Increment(MetricParseError)
		c.logger.Error("EDN response parse failed", "error", err)
		return nil, err
	}
	return v, nil
}

// transportError classifies a transport failure as timeout or connection
func (c *Client) transportError(url string, err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return WithContext(ErrTimeout, map[string]interface{}{
			"url":   url,
			"cause": err.Error(),
		})
	}
	return WithContext(ErrConnection, map[string]interface{}{
		"url":   url,
		"cause": err.Error(),
	})
}

func expectStatus(op, url string, resp *resty.Response, expected ...int) error {
	for _, s := range expected {
		if resp.StatusCode() == s {
			return nil
		}
	}
	return WithContext(ErrUnexpectedStatus, map[string]interface{}{
		"operation": op,
		"url":       url,
		"status":    resp.StatusCode(),
		"body":      resp.String(),
	})
}

func typeName(v edn.Value) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case edn.Map:
		return "map"
	case edn.Vector:
		return "vector"
	case edn.Set:
		return "set"
	default:
		return "scalar"
	}
}

// Database binds a database name to a client so callers can drop the name
// from every call.
type Database struct {
	name   string
	client *Client
}

// Name returns the database name
func (d *Database) Name() string {
	return d.name
}

// Transact delegates to Client.Transact for this database
func (d *Database) Transact(ctx context.Context, txData ...string) (edn.Map, error) {
	return d.client.Transact(ctx, d.name, txData...)
}

// Query delegates to Client.Query for this database
func (d *Database) Query(ctx context.Context, query string, opts *QueryOptions) (edn.Vector, error) {
	return d.client.Query(ctx, d.name, query, opts)
}

// Entity delegates to Client.Entity for this database
func (d *Database) Entity(ctx context.Context, eid int64) (edn.Map, error) {
	return d.client.Entity(ctx, d.name, eid)
}
