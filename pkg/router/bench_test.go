package router

import (
	"fmt"
	"testing"
)

func benchTree(b *testing.B, decls []Decl) *RouteNode {
	b.Helper()
	root, err := BuildTree(decls)
	if err != nil {
		b.Fatalf("BuildTree: %v", err)
	}
	return root
}

// BenchmarkResolveStatic benchmarks resolving a literal route.
func BenchmarkResolveStatic(b *testing.B) {
	decls := []Decl{
		{Path: "/", Index: true, Payload: "home"},
		{Path: "/about", Payload: "about"},
		{Path: "/contact", Payload: "contact"},
		{Path: "/pricing", Payload: "pricing"},
		{Path: "/features", Payload: "features"},
	}
	root := benchTree(b, decls)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/about")
	}
}

// BenchmarkResolveParam benchmarks resolving a parameterized route.
func BenchmarkResolveParam(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/users/:id", Payload: "user"},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/users/123")
	}
}

// BenchmarkResolveMultipleParams benchmarks resolving several captures at once.
func BenchmarkResolveMultipleParams(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/users/:userId/posts/:postId/comments/:commentId", Payload: "comment"},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/users/42/posts/100/comments/999")
	}
}

// BenchmarkResolveWildcard benchmarks resolving a wildcard route.
func BenchmarkResolveWildcard(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/files/*path", Payload: "files"},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/files/a/b/c/d/e")
	}
}

// BenchmarkResolveNested benchmarks resolving through a deep nested tree.
func BenchmarkResolveNested(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/a", Children: []Decl{
			{Path: "/b", Children: []Decl{
				{Path: "/c", Children: []Decl{
					{Path: "/d", Payload: "deep"},
				}},
			}},
		}},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/a/b/c/d")
	}
}

// BenchmarkResolveBacktrack benchmarks a path that fails down the
// higher-precedence branch before the wildcard accepts it.
func BenchmarkResolveBacktrack(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/shop", Children: []Decl{
			{Path: "/:category/items", Payload: "items"},
			{Path: "/*rest", Payload: "shop-rest"},
		}},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/shop/electronics/sale")
	}
}

// BenchmarkResolveLargeTree benchmarks resolving among many siblings.
func BenchmarkResolveLargeTree(b *testing.B) {
	decls := make([]Decl, 0, 100)
	for i := 0; i < 100; i++ {
		decls = append(decls, Decl{
			Path:    fmt.Sprintf("/route%d", i),
			Payload: fmt.Sprintf("route%d", i),
		})
	}
	root := benchTree(b, decls)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/route50")
	}
}

// BenchmarkResolveNoMatch benchmarks failed resolution.
func BenchmarkResolveNoMatch(b *testing.B) {
	root := benchTree(b, []Decl{
		{Path: "/users", Payload: "users"},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resolve(root, "/notfound")
	}
}

// BenchmarkBindParams benchmarks struct binding of captured parameters.
func BenchmarkBindParams(b *testing.B) {
	type userParams struct {
		ID   int    `param:"id"`
		Name string `param:"name"`
	}

	params := map[string]string{"id": "123", "name": "test"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var p userParams
		BindParams(params, &p)
	}
}

// BenchmarkSplitPath benchmarks path splitting.
func BenchmarkSplitPath(b *testing.B) {
	path := "/users/123/posts/456/comments"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		splitPath(path)
	}
}
