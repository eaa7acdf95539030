package main

import (
	"fmt"
	"log"
	"time"

	"github.com/sdkrystian/json"
	"github.com/sdkrystian/json/storage"
)

func main() {
	size := 50000

	fmt.Println("--- Build ---")
	fmt.Println("Documents:", size)

	sp := storage.NewCountedMonotonic(
		storage.WithInitialSize(1 << 20),
	)
	defer sp.Release()

	start := time.Now()

	root := json.EmptyArrayValue(sp)
	arr, _ := root.GetArray()
	arr.Reserve(size)
	for i := 0; i < size; i++ {
		item := json.EmptyObjectValue(sp)
		obj, _ := item.GetObject()
		if err := obj.SetInt64("id", int64(i)); err != nil {
			log.Fatal(err)
		}
		if err := obj.SetString("name", fmt.Sprintf("item-%d", i)); err != nil {
			log.Fatal(err)
		}
		if err := obj.SetDouble("score", float64(i)*0.5); err != nil {
			log.Fatal(err)
		}
		if err := arr.PushBack(item); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("Seconds: %.2f\n\n", time.Since(start).Seconds())

	arena := sp.Resource().(*storage.Monotonic)
	fmt.Println(arena.Stats())
	fmt.Println()

	fmt.Println("--- Serialize ---")

	start = time.Now()
	data := json.Serialize(root)
	fmt.Printf("Bytes: %d\n", len(data))
	fmt.Printf("Seconds: %.4f\n\n", time.Since(start).Seconds())

	fmt.Println("--- Parse ---")

	sp2 := storage.NewCountedMonotonic(
		storage.WithInitialSize(1 << 20),
	)
	defer sp2.Release()

	start = time.Now()
	back, err := json.ParseBytes(data, json.WithStorage(sp2))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Seconds: %.4f\n\n", time.Since(start).Seconds())

	obj, _ := back.GetArray()
	first, err := obj.At(0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("First:", json.SerializeString(first))
	fmt.Println("Equal:", root.Equal(back))
}
