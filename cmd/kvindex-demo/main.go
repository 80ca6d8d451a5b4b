// Command kvindex-demo exercises pkg/kvindex against a real file, the way
// cmd/db's original demo exercised pkg/db against a B+ tree file.
package main

import (
	"fmt"
	"log"

	"region-rbtree/pkg/kvindex"
	"region-rbtree/pkg/rbtree"
)

// keyWidth is the fixed width used for every FixedStringKey below; all
// keys stored in one index must share a single encoded width.
const keyWidth = 16

func main() {
	idx, err := kvindex.Open("data/kvindex", keyWidth)
	if err != nil {
		log.Fatalf("failed to open index: %v", err)
	}
	defer idx.Close()

	records := []struct {
		name string
		link uint32
	}{
		{"apple", 1},
		{"banana", 2},
		{"grape", 3},
		{"orange", 4},
		{"cherry", 5},
	}

	fmt.Println("Inserting records...")

	for _, r := range records {
		key := rbtree.FixedStringKey{Value: r.name, Width: keyWidth}
		if _, err := idx.Put(key, r.link); err != nil {
			log.Printf("failed to insert %s: %v", r.name, err)
		}
	}

	fmt.Println("\nIndex contents:")
	idx.Range(func(key []byte, link uint32) bool {
		fmt.Printf("%s -> %d\n", trimPadding(key), link)
		return true
	})

	searchNames := []string{"apple", "banana", "mango"}

	fmt.Println("\nSearch results:")

	for _, name := range searchNames {
		key := rbtree.FixedStringKey{Value: name, Width: keyWidth}
		if link, found := idx.Get(key); found {
			fmt.Printf("found: %s -> %d\n", name, link)
		} else {
			fmt.Printf("not found: %s\n", name)
		}
	}

	fmt.Println("\nTesting deletion...")

	appleKey := rbtree.FixedStringKey{Value: "apple", Width: keyWidth}
	if _, removed, err := idx.Delete(appleKey); err != nil {
		log.Printf("failed to delete apple: %v", err)
	} else if !removed {
		fmt.Println("apple was not present")
	}

	if _, found := idx.Get(appleKey); found {
		fmt.Println("apple still exists")
	} else {
		fmt.Println("apple successfully deleted")
	}
}

func trimPadding(encoded []byte) string {
	end := len(encoded)
	for end > 0 && encoded[end-1] == 0 {
		end--
	}

	return string(encoded[:end])
}
