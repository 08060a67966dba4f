package jdb_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/jdb"
	"github.com/hupe1980/jdb/internal/format"
	"github.com/hupe1980/jdb/internal/jdbtest"
)

func ExampleLoad() {
	s := jdbtest.New()
	s.Names = []jdbtest.Name{{Ob: 1, Name: "K"}, {Ob: 2, Name: "S"}}
	s.Weights = []format.WeightRecord{{Ob: 1, Mass: 0.5}}
	b := s.Bytes()

	db, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("obs:", db.ObCount())
	for e := range db.Apps() {
		fmt.Println("app:", e)
	}
	fmt.Printf("atom prob: %.2f\n", db.AtomProb())
	fmt.Printf("P(K): %.3f\n", db.ObProb(db.Lookup("K")))
	for name, ob := range db.Names() {
		fmt.Println(name, ob)
	}
	// Output:
	// obs: 3
	// app: (1,2,3)
	// atom prob: 0.10
	// P(K): 0.050
	// K 1
	// S 2
}

func ExampleValidationError() {
	s := jdbtest.New()
	s.Apps = []jdb.Eqn{{Lhs: 1, Rhs: 2, Result: 4}}
	b := s.Bytes()

	_, err := jdb.Load(context.Background(), bytes.NewReader(b), int64(len(b)))

	var verr *jdb.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(verr.Section, verr.Index, verr.Field)
	}
	fmt.Println(err)
	// Output:
	// app 0 result
	// jdb: app equation 0: result=4 out of range [1,3]
}
