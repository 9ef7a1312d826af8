package datastructure

type Index uint32
