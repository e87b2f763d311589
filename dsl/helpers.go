package dsl

func iptr(n int) *int { return &n }

func fptr(f float64) *float64 { return &f }
