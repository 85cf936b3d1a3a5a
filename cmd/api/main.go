package main

import (
	_ "github.com/ddelliosRJ/antaeus/docs"
	"github.com/ddelliosRJ/antaeus/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Antaeus Billing API
// @version         1.0
// @description     Recurring-invoice charger: walks PENDING invoices, charges each through the payment gateway and records the outcome.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /rest/v1

func main() {
	routes.Run()
}
