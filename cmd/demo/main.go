package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist/arena"
)

func main() {
	var seed uint64
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "seed for the skip list RNG")
	flag.Parse()

	sl := arena.NewWithSeed(uint32(seed))

	fmt.Println("starting with an empty skip list:")
	sl.Display(os.Stdout)

	values := []skiplist.V{3, 6, 7, 9, 12, 19, 17, 26, 21, 25}
	fmt.Printf("\ninserting values: %v\n", values)
	for _, v := range values {
		sl.Insert(v)
	}
	sl.Display(os.Stdout)

	fmt.Println("\ninserting duplicate value 12:")
	before := sl.Len()
	sl.Insert(12)
	fmt.Printf("len before=%d, after=%d (duplicate is a no-op)\n", before, sl.Len())

	fmt.Println("\nsearch operations:")
	for _, v := range []skiplist.V{6, 19, 5, 30, 21} {
		fmt.Printf("search(%d) = %v\n", v, sl.Search(v))
	}

	fmt.Println("\ndelete operations:")
	for _, v := range []skiplist.V{19, 5, 12} {
		fmt.Printf("delete(%d) = %v\n", v, sl.Delete(v))
	}

	fmt.Println("\nfinal skip list state:")
	sl.Display(os.Stdout)
	sl.DisplayDetailed(os.Stdout)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("len=%d, empty=%v\n", sl.Len(), sl.IsEmpty())
}
