// Offline monthly report export: reads a user's records straight from the
// remote store and writes the workbook to disk, optionally archiving a
// copy to S3.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/kintai-app/kintai/config"
	"github.com/kintai-app/kintai/export"
	"github.com/kintai-app/kintai/infrastructure/filesystem"
	"github.com/kintai-app/kintai/store"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	userID := flag.String("user", "", "user id to export")
	year := flag.Int("year", 0, "target year")
	month := flag.Int("month", 0, "target month (1-12)")
	out := flag.String("out", "", "output path (defaults to the standard filename)")
	archive := flag.Bool("archive", false, "also upload the report to the archive bucket")
	listArchive := flag.Bool("list-archive", false, "list archived reports and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if *listArchive {
		if cfg.Archive.Bucket == "" {
			log.Fatal("no archive bucket configured")
		}
		keys, err := filesystem.ListFiles(cfg.Archive.Bucket, ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return
	}

	if *userID == "" || *year == 0 || *month < 1 || *month > 12 {
		log.Fatal("-user, -year and -month are required")
	}

	remote, err := store.OpenRemote(cfg.Remote.DSN, cfg.Remote.MaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer remote.Close()

	records, err := remote.Load(ctx, *userID)
	if err != nil {
		log.Fatal(err)
	}

	f, err := export.BuildMonthlyReport(records, *year, *month)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	filename := export.Filename(*year, *month)
	path := *out
	if path == "" {
		path = filename
	}
	if err := f.SaveAs(path); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", path)

	if *archive {
		if cfg.Archive.Bucket == "" {
			log.Fatal("no archive bucket configured")
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			log.Fatal(err)
		}
		key := fmt.Sprintf("%s%s/%s", cfg.Archive.Prefix, *userID, filename)
		if err := filesystem.WriteFile(cfg.Archive.Bucket, key, ctx, bytes.NewReader(buf.Bytes())); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("archived s3://%s/%s\n", cfg.Archive.Bucket, key)
	}
}
