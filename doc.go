// Package datomic is a client for the Datomic REST service, built on a
// complete EDN reader and writer.
//
// # Overview
//
// The package speaks the Datomic REST API: create databases, transact
// data, run Datalog queries and fetch entities. Responses are EDN and are
// decoded by the edn subpackage into plain Go values. It provides:
//
//   - Full EDN reading and writing, including #inst, #uuid and custom tags
//   - Database, transaction, query and entity operations over HTTP
//   - Schema definition builders for attribute installation
//   - Row mapping from query results to named columns
//   - Observability hooks (Prometheus metrics + structured logging)
//   - Testcontainers support for integration testing against Datomic Free
//
// # Quick Start
//
//	client, err := datomic.NewClient(datomic.DefaultConfig("http://localhost:3000"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctx := context.Background()
//
//	db, err := client.CreateDatabase(ctx, "people")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Install schema
//	db.Transact(ctx, datomic.Schema(
//		datomic.NewAttribute(":person/name", datomic.TypeString).Build(),
//	)...)
//
//	// Add data and query it
//	db.Transact(ctx, `{:db/id #db/id [:db.part/user] :person/name "Alice"}`)
//	rows, err := db.Query(ctx, `[:find ?name :where [?e :person/name ?name]]`, nil)
//
// Production setup with observability:
//
//	logger, _ := datomic.NewProductionZapLogger()
//	metrics := datomic.NewPrometheusMetrics(prometheus.NewRegistry())
//	client = client.WithLogger(logger).WithMetrics(metrics)
//
// # Core Concepts
//
// Client: the REST transport. Holds the base URL, storage alias, timeout
// and the tag registry used to decode responses.
//
// Database: a named database reachable through a Client. Transact, Query
// and Entity on a Database delegate to the Client with the name filled in.
//
// edn: the wire format. See the edn subpackage for parsing and writing
// EDN independently of the REST client.
package datomic
