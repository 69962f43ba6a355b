package bind_test

import (
	"fmt"
	"strconv"

	"schema-typer/bind"
)

type moreThanError interface {
	error
	More()
}

func empty()                          { panic("not implemented") }
func wrong(int) (string, error, bool) { panic("not implemented") }

func full(int) (string, bool, error)          { panic("not implemented") }
func customError(int) (string, moreThanError) { panic("not implemented") }
func doublePointer(**int) string              { panic("not implemented") }

func ExampleParseCaster() {
	desc, err := bind.ParseCaster(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = bind.ParseCaster(strconv.Itoa)
	fmt.Println(err, desc.FullName(), desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = bind.ParseCaster(strconv.Atoi)
	fmt.Println(err, desc.FullName(), desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = bind.ParseCaster(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	_, err = bind.ParseCaster(empty)
	fmt.Println(err)

	_, err = bind.ParseCaster(wrong)
	fmt.Println(err)

	_, err = bind.ParseCaster(doublePointer)
	fmt.Println(err)

	// Output:
	// <nil> bind_test full int string true true
	// <nil> strconv.Itoa int string false false
	// <nil> strconv.Atoi string int false true
	// <nil> bind_test customError int string false true
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// caster function does not support double pointers
}
