package container

import "github.com/samber/do"

// NewServer creates the injector for the HTTP server. Services are built
// lazily on first invoke.
func NewServer(options *Options) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, options)

	LoggerPackage(injector)
	TracingPackage(injector)
	RedisPackage(injector)
	PostgresPackage(injector)
	SQLitePackage(injector)
	RepositoryPackage(injector)
	ShortenerPackage(injector)
	PublisherGroupPackage(injector)
	HTTPPackage(injector)

	return injector
}

// NewConsumer creates the injector for the analytics worker.
func NewConsumer(options *Options) *do.Injector {
	injector := do.New()
	do.ProvideValue(injector, options)

	LoggerPackage(injector)
	RedisPackage(injector)
	ConsumerGroupPackage(injector)

	return injector
}
