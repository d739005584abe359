package circuit

func newTestCircuit() *Circuit {
	return NewCircuit("test", NewAllocator())
}

func outRef(n *Node) SocketRef {
	ref, _ := n.Out()
	return ref
}

func inRef(n *Node, i int) SocketRef {
	ref, _ := n.In(i)
	return ref
}
