package models

// FallbackMovies returns the built-in catalog used when the recommendation
// service is unavailable. Every call returns a fresh copy.
func FallbackMovies() []*Movie {
	return []*Movie{
		{ID: 1, Title: "Echoes in the Dark", Img: "https://m.media-amazon.com/images/M/MV5BYTUxZGIzZjItMTEzNC00YTNlLWEwZTItMzFhNzE4Zjk0YzEwXkEyXkFqcGc@._V1_QL75_UX190_CR0,4,190,281_.jpg", Genre: GenreThriller, Year: 2024},
		{ID: 2, Title: "Forest of Memories", Img: "https://m.media-amazon.com/images/I/71BsiS-OLxL._UF1000,1000_QL80_.jpg", Genre: GenreDrama, Year: 2023},
		{ID: 3, Title: "A Minecraft Movie", Img: "https://upload.wikimedia.org/wikipedia/en/6/66/A_Minecraft_Movie_poster.jpg", Genre: GenreAction, Year: 2025},
		{ID: 4, Title: "Beneath the Surface", Img: "https://m.media-amazon.com/images/M/MV5BYjZjYmQ1MGMtZjI4ZS00OWVkLWE0MzMtM2I5MTM3YmFkZGRiXkEyXkFqcGc@._V1_.jpg", Genre: GenreThriller, Year: 2023},
		{ID: 5, Title: "Chainsaw Man – The Movie: Reze Arc", Img: "https://encrypted-tbn3.gstatic.com/images?q=tbn:ANd9GcSlacjk-N2t0Ool13mp3eZJAHGCfN-ce_J6qt6BsL08mYbzeJetpHS2kTjRzy8kZMVHdP_OnA", Genre: GenreAction, Year: 2024},
		{ID: 6, Title: "The Shawshank Redemption", Img: "https://m.media-amazon.com/images/M/MV5BMDAyY2FhYjctNDc5OS00MDNlLThiMGUtY2UxYWVkNGY2ZjljXkEyXkFqcGc@._V1_FMjpg_UX1000_.jpg", Genre: GenreDrama, Year: 1994},
	}
}
