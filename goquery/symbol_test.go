package goquery_test

import (
	"testing"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const functionPage = `<!DOCTYPE html>
<html>
<body>
<h1 class="firstHeading">abs, labs, llabs</h1>
<div class="mw-content-ltr">
	<table class="t-dcl-begin">
		<tbody>
			<tr class="t-dsc-header"><td>Defined in header <a>&lt;cstdlib&gt;</a></td></tr>
			<tr class="t-dcl"><td><span>int</span><span>&#160;abs(&#160;int&#160;n&#160;);</span></td></tr>
			<tr class="t-dcl"><td><span>long</span><span>&#160;labs(&#160;long&#160;n&#160;);</span></td></tr>
		</tbody>
	</table>
	<p>Computes the absolute value of an integer number.</p>
	<h3><span class="mw-headline" id="Parameters">Parameters</span></h3>
	<table class="t-par-begin">
		<tr><td>n</td><td>-</td><td>integer value</td></tr>
	</table>
	<h3><span class="mw-headline" id="Return_value">Return value</span></h3>
	<p>The absolute value of n.</p>
	<h3><span class="mw-headline" id="Notes">Notes</span></h3>
	<p>Behavior is undefined if the result cannot be represented.</p>
</div>
</body>
</html>`

const typePage = `<!DOCTYPE html>
<html>
<body>
<h1 class="firstHeading">std::vector</h1>
<div class="mw-content-ltr">
	<table class="t-dcl-begin">
		<tbody>
			<tr class="t-dsc-header"><td>Defined in header <a>&lt;vector&gt;</a></td></tr>
			<tr class="t-dcl"><td><span>template&lt;class&#160;T&gt;</span><span>&#160;class&#160;vector;</span></td></tr>
		</tbody>
	</table>
	<p>A sequence container that encapsulates dynamic size arrays.</p>
	<h3><span class="mw-headline" id="Member_types">Member types</span></h3>
	<table class="t-dsc-begin">
		<tr class="t-dsc"><td>value_type</td><td>T</td></tr>
		<tr class="t-dsc"><td>size_type</td><td>Unsigned integer type</td></tr>
	</table>
	<h3><span class="mw-headline" id="Member_functions">Member functions</span></h3>
	<table class="t-dsc-begin">
		<tr class="t-dsc"><td>push_back</td><td>adds an element to the end</td></tr>
		<tr class="t-dsc"><td>at</td><td>access specified element with bounds checking</td></tr>
	</table>
</div>
</body>
</html>`

func TestSymbolParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses a function page", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewSymbolParser()
		entry, err := p.Parse(functionPage, "https://en.cppreference.com/w/cpp/numeric/math/abs")
		require.NoError(t, err)

		assert.Equal(t, []string{"std::abs", "std::labs", "std::llabs"}, entry.Aliases)
		assert.Equal(t, refbot.KindFunction, entry.Kind)
		assert.Equal(t, "int abs( int n );\nlong labs( long n );", entry.Signature)
		assert.Equal(t, []string{"<cstdlib>"}, entry.Headers)
		assert.Equal(t, "The absolute value of n.", entry.Return)
		assert.Equal(t, []string{"n - integer value"}, entry.Params)
		assert.Contains(t, entry.Description, "Computes the absolute value of an integer number.")
		assert.Equal(t, "https://en.cppreference.com/w/cpp/numeric/math/abs", entry.Link)
	})

	t.Run("parses a type page", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewSymbolParser()
		entry, err := p.Parse(typePage, "https://en.cppreference.com/w/cpp/container/vector")
		require.NoError(t, err)

		assert.Equal(t, []string{"std::vector"}, entry.Aliases)
		assert.Equal(t, refbot.KindType, entry.Kind)
		assert.Equal(t, "template<class T> class vector;", entry.Signature)
		assert.Equal(t, []string{"<vector>"}, entry.Headers)
		assert.Empty(t, entry.Return)
		assert.Equal(t, []refbot.Member{
			{Name: "value_type", Desc: "T"},
			{Name: "size_type", Desc: "Unsigned integer type"},
		}, entry.MemberTypes)
		assert.Equal(t, []refbot.Member{
			{Name: "push_back", Desc: "adds an element to the end"},
			{Name: "at", Desc: "access specified element with bounds checking"},
		}, entry.MemberFuncs)
	})

	t.Run("rejects a non-symbol page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1 class="firstHeading">Strings library</h1></body></html>`
		p := goquery.NewSymbolParser()
		_, err := p.Parse(html, "https://en.cppreference.com/w/cpp/string")
		assert.Equal(t, refbot.EINVALID, refbot.ErrorCode(err))
	})

	t.Run("rejects a page without a heading", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewSymbolParser()
		_, err := p.Parse(`<html><body></body></html>`, "https://en.cppreference.com/w/cpp")
		assert.Equal(t, refbot.EINVALID, refbot.ErrorCode(err))
	})

	t.Run("accepts underscore-prefixed symbols", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1 class="firstHeading">_Exit</h1>
			<div class="mw-content-ltr">
				<h3><span class="mw-headline" id="Return_value">Return value</span></h3>
				<p>None.</p>
			</div>
		</body></html>`
		p := goquery.NewSymbolParser()
		entry, err := p.Parse(html, "https://en.cppreference.com/w/cpp/utility/program/_Exit")
		require.NoError(t, err)
		assert.Equal(t, []string{"std::_Exit"}, entry.Aliases)
		assert.Equal(t, refbot.KindFunction, entry.Kind)
	})

	t.Run("drops an overlong return section", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 300)
		for i := range long {
			long[i] = 'x'
		}
		html := `<html><body>
			<h1 class="firstHeading">getenv</h1>
			<div class="mw-content-ltr">
				<h3><span class="mw-headline" id="Return_value">Return value</span></h3>
				<p>` + string(long) + `</p>
			</div>
		</body></html>`
		p := goquery.NewSymbolParser()
		entry, err := p.Parse(html, "https://en.cppreference.com/w/cpp/utility/program/getenv")
		require.NoError(t, err)

		// Still a function page, but the garbage return text is dropped.
		assert.Equal(t, refbot.KindFunction, entry.Kind)
		assert.Empty(t, entry.Return)
	})
}
