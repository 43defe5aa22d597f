package title

import (
	"net/url"
	"testing"
)

func physicalQuery(path string) string {
	return "?path=" + url.QueryEscape(`{"Physical":{"path":"`+path+`"}}`)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		pathname string
		search   string
		want     string
	}{
		{name: "overview", pathname: "/", want: "Overview"},
		{name: "favorites", pathname: "/favorites", want: "Favorites"},
		{name: "recents", pathname: "/recents", want: "Recents"},
		{name: "file-kinds", pathname: "/file-kinds", want: "File Kinds"},
		{name: "tag", pathname: "/tag/abcdef1234", want: "Tag: abcdef12..."},
		{name: "short-tag", pathname: "/tag/abc", want: "Tag: abc..."},
		{name: "tag-without-id", pathname: "/tag/", want: AppName},
		{name: "physical", pathname: "/explorer", search: physicalQuery("/Users/me/Documents"), want: "Documents"},
		{name: "trailing-slash", pathname: "/explorer", search: physicalQuery("/Users/me/Music/"), want: "Music"},
		{name: "windows", pathname: "/explorer", search: physicalQuery(`C:\\Users\\me\\Videos`), want: "Videos"},
		{name: "root-path", pathname: "/explorer", search: physicalQuery("/"), want: ExplorerLabel},
		{name: "device-view", pathname: "/explorer", search: "?view=device", want: DeviceLabel},
		{name: "bad-json", pathname: "/explorer", search: "?path=%7Bnope", want: ExplorerLabel},
		{name: "no-physical", pathname: "/explorer", search: "?path=" + url.QueryEscape(`{"Cloud":{}}`), want: ExplorerLabel},
		{name: "no-path-param", pathname: "/explorer", search: "?sort=name", want: ExplorerLabel},
		{name: "explorer-no-query", pathname: "/explorer", want: AppName},
		{name: "unknown", pathname: "/unknown-route", want: AppName},
	}
	for _, tc := range tests {
		if got := Derive(tc.pathname, tc.search); got != tc.want {
			t.Fatalf("%s: Derive(%q, %q) = %q, want %q", tc.name, tc.pathname, tc.search, got, tc.want)
		}
	}
}

func TestDeriveDoubleEncodedPath(t *testing.T) {
	search := "?path=" + url.QueryEscape(url.PathEscape(`{"Physical":{"path":"/Users/me/My Files"}}`))
	if got := Derive("/explorer", search); got != "My Files" {
		t.Fatalf("expected double-encoded path to decode, got %q", got)
	}
}

func TestFromPath(t *testing.T) {
	if got := FromPath("/explorer" + physicalQuery("/srv/data")); got != "data" {
		t.Fatalf("expected data, got %q", got)
	}
	if got := FromPath("/favorites"); got != "Favorites" {
		t.Fatalf("expected Favorites, got %q", got)
	}
}

func TestSplit(t *testing.T) {
	pathname, search := Split("/explorer?view=device")
	if pathname != "/explorer" || search != "?view=device" {
		t.Fatalf("unexpected split %q %q", pathname, search)
	}
	pathname, search = Split("/")
	if pathname != "/" || search != "" {
		t.Fatalf("unexpected split %q %q", pathname, search)
	}
}

func TestDeriveToleratesMalformedPairs(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   string
	}{
		{name: "semicolon-pair", search: "?x=1;y=2&" + physicalQuery("/Users/me/Pictures")[1:], want: "Pictures"},
		{name: "semicolon-after-path", search: physicalQuery("/Users/me/Desktop") + ";x=1", want: "Desktop"},
		{name: "bad-escape-pair", search: "?sort=%zz&" + physicalQuery("/srv/media")[1:], want: "media"},
		{name: "first-path-wins", search: physicalQuery("/one") + "&path=x", want: "one"},
		{name: "device-among-junk", search: "?a=%&view=device", want: DeviceLabel},
	}
	for _, tc := range tests {
		if got := Derive("/explorer", tc.search); got != tc.want {
			t.Fatalf("%s: Derive(%q) = %q, want %q", tc.name, tc.search, got, tc.want)
		}
	}
}

func TestDeriveKeepsLiteralPercentInFolderName(t *testing.T) {
	if got := Derive("/explorer", physicalQuery("/data/a%41b")); got != "a%41b" {
		t.Fatalf("expected literal folder name, got %q", got)
	}
}
