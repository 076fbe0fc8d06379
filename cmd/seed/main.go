package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/medibook/appointment-registry/internal/db"
	"github.com/medibook/appointment-registry/internal/registry"
)

// seed books a batch of fake appointments so a dev environment has data to
// look at. It goes through the registry, not raw SQL, so references come
// from the real allocator.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	count := flag.Int("count", 25, "number of appointments to book")
	flag.Parse()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	alloc := registry.NewPgAllocator(pool)
	if err := alloc.Sync(context.Background()); err != nil {
		log.Fatalf("allocator sync: %v", err)
	}

	reg := registry.NewRegistry(registry.NewPgStore(pool), alloc, registry.NewMutexLocker())

	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("booking %d fake appointments", *count)
	for i := 0; i < *count; i++ {
		name := gofakeit.Name()
		// Indian mobile numbers start with 6-9; stick to the 9 block.
		contact := "+91 " + gofakeit.Numerify("9#########")

		appt, err := reg.Book(context.Background(), name, contact)
		if err != nil {
			log.Fatalf("book %q: %v", name, err)
		}
		log.Printf("booked %s for %s", appt.ReferenceID, appt.PatientName)
	}

	log.Println("seed complete")
}
