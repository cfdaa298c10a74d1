// Command hashpw prints the bcrypt hash of a password so it can be placed
// in the ADMIN_PASS_HASH environment variable. The cost comes from the
// optional second argument, then the BCRYPT_COST environment variable,
// then a default of 12.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/iliyamo/welcome-service/internal/utils"
)

const defaultCost = 12

// resolveCost picks the bcrypt cost: explicit argument first, BCRYPT_COST
// from the environment second, defaultCost otherwise.
func resolveCost(arg string) (int, error) {
	if arg != "" {
		return strconv.Atoi(arg)
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		return strconv.Atoi(v)
	}
	return defaultCost, nil
}

func main() {
	// Same best-effort .env loading as the server, so BCRYPT_COST can live
	// in one place.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <password> [cost]", os.Args[0])
	}
	arg := ""
	if len(os.Args) > 2 {
		arg = os.Args[2]
	}
	cost, err := resolveCost(arg)
	if err != nil {
		log.Fatalf("invalid cost: %q", arg)
	}
	hash, err := utils.HashPassword(os.Args[1], cost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
