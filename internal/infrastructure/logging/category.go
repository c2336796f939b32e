package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	Cache           Category = "Cache"
	Upstream        Category = "Upstream"
	Store           Category = "Store"
	Broadcast       Category = "Broadcast"
	Mongo           Category = "Mongo"
	RabbitMQ        Category = "RabbitMQ"
	Kafka           Category = "Kafka"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"

	// Store
	Mutation       SubCategory = "Mutation"
	Reconciliation SubCategory = "Reconciliation"
	Archive        SubCategory = "Archive"

	// Cache and broadcast
	Eviction SubCategory = "Eviction"
	Publish  SubCategory = "Publish"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
)
