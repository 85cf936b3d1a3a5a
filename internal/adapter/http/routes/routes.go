package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/ddelliosRJ/antaeus/docs"
	"github.com/ddelliosRJ/antaeus/internal/adapter/http/handlers"
	"github.com/ddelliosRJ/antaeus/internal/adapter/persistence/inmemory"
	repository "github.com/ddelliosRJ/antaeus/internal/adapter/persistence/repository"
	"github.com/ddelliosRJ/antaeus/internal/infrastructure/database"
	"github.com/ddelliosRJ/antaeus/internal/infrastructure/payments"
	"github.com/ddelliosRJ/antaeus/internal/infrastructure/seed"
	"github.com/ddelliosRJ/antaeus/internal/usecase"
	"github.com/ddelliosRJ/antaeus/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ctx := context.Background()

	invoiceRepo, customerRepo, paymentRepo, chargeTx := buildStores(ctx)

	if envFlag("SEED_DEMO_DATA") {
		if err := seed.DemoData(ctx, customerRepo, invoiceRepo); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	gateway := buildGateway()

	retry := usecase.RetryPolicy{
		MaxAttempts: envInt("BILLING_RETRY_MAX_ATTEMPTS", 2),
		Delay:       time.Duration(envInt("BILLING_RETRY_DELAY_MS", 1000)) * time.Millisecond,
	}
	maxWorkers := envInt("BILLING_MAX_CONCURRENT_CHARGES", 8)

	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo)
	customerUseCase := usecase.NewCustomerUseCase(customerRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo)
	billingUseCase := usecase.NewBillingUseCase(invoiceRepo, customerRepo, paymentRepo, chargeTx, gateway, retry, maxWorkers)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	customerHandler := handlers.NewCustomerHandler(customerUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	billingHandler := handlers.NewBillingHandler(billingUseCase)

	rest := router.Group("/rest")
	addPingRoutes(rest)

	v1 := rest.Group("/v1")
	addBillingRoutes(v1, invoiceHandler, customerHandler, paymentHandler, billingHandler)
}

func buildStores(ctx context.Context) (interfaces.IInvoiceRepository, interfaces.ICustomerRepository, interfaces.IPaymentRepository, interfaces.IChargeTransaction) {
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	if backend == "memory" {
		log.Printf("[routes] using in-memory store backend")
		store := inmemory.NewStore()
		return store.Invoices(), store.Customers(), store.Payments(), store.ChargeTransaction()
	}

	log.Printf("[routes] using dynamodb store backend")
	ddb := database.ConnectDynamoDB()
	if err := database.EnsureTables(ctx, ddb); err != nil {
		log.Fatalf("Failed to provision dynamodb tables: %v", err)
	}
	return repository.NewInvoiceDynamoRepository(ddb),
		repository.NewCustomerDynamoRepository(ddb),
		repository.NewPaymentDynamoRepository(ddb),
		repository.NewChargeTransactionDynamo(ddb)
}

func buildGateway() interfaces.IPaymentGateway {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY")), "mercadopago") {
		mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
		if err != nil {
			log.Fatalf("Mercado Pago gateway not configured: %v", err)
		}
		log.Printf("[routes] using mercadopago payment gateway")
		return mpGateway
	}
	log.Printf("[routes] using simulated payment gateway")
	return payments.NewRandomGateway()
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[routes] ignoring invalid %s=%q", key, v)
		return def
	}
	return n
}

func envFlag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
