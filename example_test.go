package zenshare_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http/httptest"

	"github.com/zenmark/zenshare"
	"github.com/zenmark/zenshare/internal/pastetest"
)

func ExampleClient_CreateShareLink() {
	store := httptest.NewServer(pastetest.NewServer())
	defer store.Close()

	client, err := zenshare.New(zenshare.WithHost(store.URL))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	link, err := client.CreateShareLink(ctx, zenshare.Note{
		Title:   "Todo",
		Content: "- buy milk",
	}, zenshare.WithExpiration(zenshare.Expire1Day))
	if err != nil {
		log.Fatal(err)
	}

	note, err := client.ResolveShareLink(ctx, link.URL)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(note.Title)
	fmt.Println(note.Content)
	// Output:
	// Todo
	// - buy milk
}

func ExampleShareError() {
	store := httptest.NewServer(pastetest.NewServer())
	defer store.Close()

	client, err := zenshare.New(zenshare.WithHost(store.URL))
	if err != nil {
		log.Fatal(err)
	}

	_, err = client.ResolveShareLink(context.Background(),
		"https://zenmark.site/share?p=0123456789abcdef#2NEpo7TZRRrLZSi2U")

	var shareErr *zenshare.ShareError
	if errors.As(err, &shareErr) {
		fmt.Println(shareErr.Message)
	}
	fmt.Println(errors.Is(err, zenshare.ErrNotFound))
	// Output:
	// This shared note has expired or been deleted.
	// true
}

func ExampleParseShareURL() {
	params, err := zenshare.ParseShareURL("https://zenmark.site/share?p=f468483c313401e8#6MYQUNFmpGAQzkLm")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(params.PasteID)
	fmt.Println(params.EncodedKey)
	// Output:
	// f468483c313401e8
	// 6MYQUNFmpGAQzkLm
}

func ExampleExpirations() {
	for _, opt := range zenshare.Expirations() {
		fmt.Printf("%s: %s\n", opt.Value, opt.Label)
	}
	// Output:
	// 5min: 5 minutes
	// 10min: 10 minutes
	// 1hour: 1 hour
	// 1day: 1 day
	// 1week: 1 week
	// 1month: 1 month
	// never: Never
}
