package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kintai-app/kintai/security"
)

func main() {
	userID := flag.String("user", "", "user id (subject)")
	name := flag.String("name", "", "display name")
	admin := flag.Bool("admin", false, "grant the admin flag")
	ttl := flag.Int64("ttl", 3600, "token lifetime in seconds")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	secret := os.Getenv("KINTAI_JWT_SECRET")
	if secret == "" {
		log.Fatal("KINTAI_JWT_SECRET is not set")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: *userID,
		Name:   *name,
		Admin:  *admin,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
