package corpus

import (
	"time"

	"ragbooks/pkg/domain"
)

// SeedBooks returns the fixed startup collection. Ids are assigned at
// insertion, so the entries here carry none.
func SeedBooks() []domain.Book {
	return []domain.Book{
		{
			Title:         "The Art of Machine Learning",
			Author:        "Dr. Sarah Chen",
			Description:   "A comprehensive guide to understanding and implementing machine learning algorithms in modern applications.",
			Content:       "This book covers fundamental concepts of machine learning, including supervised and unsupervised learning, neural networks, and deep learning architectures. It provides practical examples and real-world applications that demonstrate how AI can be leveraged to solve complex problems.",
			Category:      "Technology",
			PublishedYear: 2023,
			Tags:          []string{"AI", "Machine Learning", "Technology"},
			Embedding:     []float64{0.1, 0.2, 0.3, 0.4, 0.5},
		},
		{
			Title:         "Natural Language Processing Fundamentals",
			Author:        "Prof. Michael Rodriguez",
			Description:   "Understanding how computers process and understand human language.",
			Content:       "This comprehensive guide explores the foundations of natural language processing, covering tokenization, part-of-speech tagging, named entity recognition, and advanced topics like transformer models and attention mechanisms. The book includes practical examples using Python and popular NLP libraries.",
			Category:      "Computer Science",
			PublishedYear: 2022,
			Tags:          []string{"NLP", "Language", "AI"},
			Embedding:     []float64{0.2, 0.3, 0.4, 0.1, 0.6},
		},
		{
			Title:         "Data Science in Practice",
			Author:        "Dr. Emily Watson",
			Description:   "Practical approaches to data analysis and visualization.",
			Content:       "This book provides hands-on experience with data science workflows, from data collection and cleaning to advanced analytics and machine learning. It covers statistical analysis, data visualization techniques, and how to communicate insights effectively to stakeholders.",
			Category:      "Data Science",
			PublishedYear: 2023,
			Tags:          []string{"Data Science", "Analytics", "Statistics"},
			Embedding:     []float64{0.3, 0.1, 0.2, 0.5, 0.4},
		},
		{
			Title:         "Modern Web Development",
			Author:        "Alex Thompson",
			Description:   "Building scalable web applications with modern frameworks.",
			Content:       "A complete guide to modern web development practices, covering frontend frameworks like React and Vue.js, backend technologies including Node.js and Python, database design, and deployment strategies. The book emphasizes best practices for building maintainable and scalable applications.",
			Category:      "Web Development",
			PublishedYear: 2024,
			Tags:          []string{"Web Development", "JavaScript", "React"},
			Embedding:     []float64{0.4, 0.5, 0.1, 0.3, 0.2},
		},
		{
			Title:         "Quantum Computing Explained",
			Author:        "Dr. James Liu",
			Description:   "An introduction to quantum computing concepts and applications.",
			Content:       "This book demystifies quantum computing, explaining complex concepts in accessible terms. It covers quantum bits, superposition, entanglement, and quantum algorithms. The text includes examples of how quantum computing might revolutionize fields like cryptography, optimization, and drug discovery.",
			Category:      "Physics",
			PublishedYear: 2023,
			Tags:          []string{"Quantum", "Computing", "Physics"},
			Embedding:     []float64{0.5, 0.2, 0.4, 0.1, 0.3},
		},
	}
}

// SeedConversation returns the initial conversation log loaded at startup.
func SeedConversation() []domain.ConversationTurn {
	return []domain.ConversationTurn{
		{
			ID:        1,
			User:      "What is machine learning?",
			Assistant: "Machine learning is a subset of artificial intelligence (AI) that enables computers to learn and improve from experience without being explicitly programmed. It involves algorithms that can identify patterns in data and make predictions or decisions based on that data.",
			Sources:   []int{1, 2},
			Timestamp: time.Date(2024, 11, 25, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        2,
			User:      "How does natural language processing work?",
			Assistant: "Natural Language Processing (NLP) works by breaking down human language into components that computers can understand. It involves several steps including tokenization (breaking text into words), part-of-speech tagging, syntax analysis, and semantic understanding. Modern NLP uses neural networks and transformer models to achieve human-like language understanding.",
			Sources:   []int{2},
			Timestamp: time.Date(2024, 11, 25, 11, 15, 0, 0, time.UTC),
		},
	}
}
