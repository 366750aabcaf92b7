package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		title, desc string
		want        string
	}{
		{"New vaccine cuts hospital admissions", "Doctors report fewer patients with the virus", "Health"},
		{"NASA telescope spots distant planet", "Scientists publish the study today", "Science"},
		{"Stock market rallies as inflation cools", "Investors cheer bank earnings", "Business"},
		{"Parliament passes climate law", "Government vote on emissions targets", "Politics"},
		{"Cricket world cup final set", "The league champions meet in the tournament", "Sports"},
		{"Streaming series tops box office chart", "The actor wins an award", "Entertainment"},
		{"Record drought hits wildlife", "Carbon and pollution levels rise", "Environment"},
		{"Startup ships AI chip", "The software runs in the cloud", "Technology"},
	}
	for _, tt := range tests {
		if got := Classify(tt.title, tt.desc); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	if got := Classify("", ""); got != Fallback {
		t.Errorf("empty input = %s, want %s", got, Fallback)
	}
	if got := Classify("Our year in review", "A look back"); got != Fallback {
		t.Errorf("generic input = %s, want %s", got, Fallback)
	}
}

func TestClassifyTitleWeighsDouble(t *testing.T) {
	// one Sports hit in the title beats one Business hit in the description
	if got := Classify("Football", "profit"); got != "Sports" {
		t.Errorf("got %s, want Sports", got)
	}
}

func TestClassifyTieGoesToEarlierCategory(t *testing.T) {
	// Health precedes Business in the category order
	if got := Classify("hospital bank", ""); got != "Health" {
		t.Errorf("got %s, want Health", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Science", "Science", false},
		{"science", "Science", false},
		{" tech ", "Technology", false},
		{"AUTO", Auto, false},
		{"env", "Environment", false},
		{"Cricket", "", true},
		{"For You", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
